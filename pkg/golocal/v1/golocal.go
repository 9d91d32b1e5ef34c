//go:build go1.4
// +build go1.4

package v1

import (
	"context"
	"sync"

	"github.com/modern-go/gls"
)

const (
	TraceID   = "X-Trace-ID"
	GoContext = "Go-Context"
)

var localMap sync.Map

func getGoID() int64 {
	return gls.GoID()
}

func getMapByGoID(goID int64) *sync.Map {
	value, _ := localMap.Load(goID)
	if value == nil {
		m := &sync.Map{}
		localMap.Store(goID, m)
		return m
	}
	return value.(*sync.Map)
}

func PutTraceID(value string) {
	getMapByGoID(getGoID()).Store(TraceID, value)
}

func GetTraceID() string {
	m := getMapByGoID(getGoID())
	if v, ok := m.Load(TraceID); ok {
		return v.(string)
	}
	return ""
}

func Put(key string, value interface{}) {
	getMapByGoID(getGoID()).Store(key, value)
}

func Get(key string) interface{} {
	if v, ok := getMapByGoID(getGoID()).Load(key); ok {
		return v
	}
	return nil
}

func PutContext(ctx context.Context) {
	getMapByGoID(getGoID()).Store(GoContext, ctx)
}

func GetContext() context.Context {
	m := getMapByGoID(getGoID())
	if v, ok := m.Load(GoContext); ok {
		return v.(context.Context)
	}
	background := context.Background()
	PutContext(background)
	return background
}

// Clean drops the local map of the calling goroutine. Connection tasks
// must call it before the goroutine exits or entries leak.
func Clean() {
	localMap.Delete(getGoID())
}
