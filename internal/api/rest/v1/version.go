package v1

// Version of the REST API
const Version = "v1"

// BasePath is the route prefix of all version 1 endpoints
const BasePath = "/api/" + Version + "/signer"
