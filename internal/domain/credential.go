package domain

// Credential is the username and access token used against the hosting API.
// Host is the git host the token belongs to; git transports to any other
// host never see it.
type Credential struct {
	Username string
	Token    string
	Host     string
}

// String redacts the token so a Credential can be passed to loggers safely.
func (c Credential) String() string {
	return c.Username + ":[redacted]"
}

// GoString redacts the token for %#v.
func (c Credential) GoString() string {
	return c.String()
}
