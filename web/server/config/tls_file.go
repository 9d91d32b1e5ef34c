/*
 * Copyright 2024 Routs Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package config

import (
	"fmt"

	"github.com/Murilinho145SG/Routs/pkg/tools"
)

// TLSFileConfig is the JSON document supplying certificate paths, loaded
// once at process startup.
type TLSFileConfig struct {
	CertFile string `json:"cert_file"`
	KeyFile  string `json:"key_file"`
}

func LoadTLSFileConfig(path string) (*TLSFileConfig, error) {
	cfg := &TLSFileConfig{}
	if err := tools.UnmarshalFileJson(path, cfg); err != nil {
		return nil, err
	}

	if cfg.CertFile == "" || cfg.KeyFile == "" {
		return nil, fmt.Errorf("tls config %s: cert_file and key_file are both required", path)
	}
	return cfg, nil
}
