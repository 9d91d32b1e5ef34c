package config

import (
	"github.com/Murilinho145SG/Routs/global/env"
	"github.com/Murilinho145SG/Routs/pkg/logger"
	"github.com/Murilinho145SG/Routs/pkg/tools"
	webconfig "github.com/Murilinho145SG/Routs/web/server/config"
)

type DefaultConfig struct {
	LoggerConfig logger.Config     `yaml:"logger"`
	WebConfig    webconfig.Options `yaml:"web"`
}

func LoadDefaultConfig(v *DefaultConfig) (err error) {
	err = tools.LoadConfig(env.ConfigPath+"/default.yaml", v)
	return
}
