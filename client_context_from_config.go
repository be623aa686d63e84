package bpclient

import (
	"strings"

	"github.com/baseplane/go-client-sdk/bpcomponents"
	"github.com/baseplane/go-client-sdk/internal"
	"github.com/baseplane/go-client-sdk/subsystems"
)

func newClientContextFromConfig(project ProjectConfig, config Config) (*internal.ClientContextImpl, error) {
	basicConfig := subsystems.BasicClientContext{
		APIKey:           project.Key,
		ProjectURL:       strings.TrimRight(project.URL, "/"),
		ApplicationInfo:  config.ApplicationInfo,
		ServiceEndpoints: config.ServiceEndpoints,
	}

	loggingFactory := config.Logging
	if loggingFactory == nil {
		loggingFactory = bpcomponents.Logging()
	}
	logging, err := loggingFactory.Build(basicConfig)
	if err != nil {
		return nil, err
	}
	basicConfig.Logging = logging

	httpFactory := config.HTTP
	if httpFactory == nil {
		httpFactory = bpcomponents.HTTPConfiguration()
	}
	// The logging configuration is built first so that the HTTP factory can log.
	http, err := httpFactory.Build(basicConfig)
	if err != nil {
		return nil, err
	}
	basicConfig.HTTP = http

	return &internal.ClientContextImpl{BasicClientContext: basicConfig}, nil
}
