package interfaces

// ServiceEndpoints allow configuration of custom service base URIs.
//
// If all fields are left empty, each service URI is derived from the project URL: the REST
// data API at <project URL>/rest/v1, the realtime change feed at <project URL>/realtime/v1,
// and the auth service at <project URL>/auth/v1. You may set individual values such as REST,
// or use the helper method bpcomponents.ProjectEndpoints().
//
// See Config.ServiceEndpoints for more details.
type ServiceEndpoints struct {
	REST     string
	Realtime string
	Auth     string
}
