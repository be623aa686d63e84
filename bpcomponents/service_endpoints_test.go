package bpcomponents

import (
	"testing"

	"github.com/baseplane/go-client-sdk/interfaces"

	"github.com/stretchr/testify/assert"
)

func TestProjectEndpoints(t *testing.T) {
	assert.Equal(t, interfaces.ServiceEndpoints{
		REST:     "http://localhost:54321/rest/v1",
		Realtime: "http://localhost:54321/realtime/v1",
		Auth:     "http://localhost:54321/auth/v1",
	}, ProjectEndpoints("http://localhost:54321"))
}

func TestProjectEndpointsWithoutRealtime(t *testing.T) {
	endpoints := ProjectEndpointsWithoutRealtime("http://localhost:54321")
	assert.Equal(t, "http://localhost:54321/rest/v1", endpoints.REST)
	assert.Equal(t, "http://localhost:54321/auth/v1", endpoints.Auth)
	assert.Equal(t, "", endpoints.Realtime)
}
