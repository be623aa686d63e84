package endpoints

import (
	"fmt"
	"testing"

	"github.com/baseplane/go-client-sdk/interfaces"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
	"github.com/launchdarkly/go-sdk-common/v3/ldlogtest"

	"github.com/stretchr/testify/assert"
)

const testProjectURL = "https://myproject.example.com"

func TestDefaultBaseURI(t *testing.T) {
	assert.Equal(t, testProjectURL+"/rest/v1", DefaultBaseURI(testProjectURL, RESTService))
	assert.Equal(t, testProjectURL+"/realtime/v1", DefaultBaseURI(testProjectURL, RealtimeService))
	assert.Equal(t, testProjectURL+"/auth/v1", DefaultBaseURI(testProjectURL, AuthService))
}

func TestDefaultBaseURIStripsTrailingSlash(t *testing.T) {
	assert.Equal(t, testProjectURL+"/rest/v1", DefaultBaseURI(testProjectURL+"/", RESTService))
}

func TestSelectBaseURIWithNoCustomEndpoints(t *testing.T) {
	for _, serviceType := range []ServiceType{RESTService, RealtimeService, AuthService} {
		t.Run(serviceType.String(), func(t *testing.T) {
			mockLog := ldlogtest.NewMockLog()
			uri := SelectBaseURI(testProjectURL, interfaces.ServiceEndpoints{}, serviceType, mockLog.Loggers)
			assert.Equal(t, DefaultBaseURI(testProjectURL, serviceType), uri)
			assert.Len(t, mockLog.GetAllOutput(), 0)
		})
	}
}

func TestSelectBaseURIWithCustomEndpoint(t *testing.T) {
	custom := interfaces.ServiceEndpoints{REST: "http://localhost:9999/rest-proxy/"}
	mockLog := ldlogtest.NewMockLog()
	uri := SelectBaseURI(testProjectURL, custom, RESTService, mockLog.Loggers)
	assert.Equal(t, "http://localhost:9999/rest-proxy", uri)
	assert.Len(t, mockLog.GetAllOutput(), 0)
}

func TestSelectBaseURILogsErrorForPartialCustomEndpoints(t *testing.T) {
	custom := interfaces.ServiceEndpoints{REST: "http://localhost:9999"}
	mockLog := ldlogtest.NewMockLog()
	uri := SelectBaseURI(testProjectURL, custom, RealtimeService, mockLog.Loggers)
	assert.Equal(t, DefaultBaseURI(testProjectURL, RealtimeService), uri)
	mockLog.AssertMessageMatch(t, true, ldlog.Error, "custom ServiceEndpoints without specifying the Realtime base URI")
}

func TestIsCustom(t *testing.T) {
	custom := interfaces.ServiceEndpoints{Auth: "http://localhost:9999"}
	assert.True(t, IsCustom(custom, AuthService))
	assert.False(t, IsCustom(custom, RESTService))
	assert.False(t, IsCustom(interfaces.ServiceEndpoints{}, AuthService))
}

func TestAddPath(t *testing.T) {
	for _, params := range []struct{ base, path, expected string }{
		{"http://uri", "subpath", "http://uri/subpath"},
		{"http://uri/", "subpath", "http://uri/subpath"},
		{"http://uri", "/subpath", "http://uri/subpath"},
		{"http://uri/", "/subpath", "http://uri/subpath"},
	} {
		t.Run(fmt.Sprintf("%s + %s", params.base, params.path), func(t *testing.T) {
			assert.Equal(t, params.expected, AddPath(params.base, params.path))
		})
	}
}
