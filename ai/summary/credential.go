package summary

// CredentialKind selects where the remote API key for a single call comes from.
type CredentialKind int

const (
	// CredentialAmbient uses the key configured at construction.
	CredentialAmbient CredentialKind = iota
	// CredentialExplicit uses the key carried by the override for this call only.
	CredentialExplicit
	// CredentialDisabled forces the local heuristic.
	CredentialDisabled
)

func (k CredentialKind) String() string {
	switch k {
	case CredentialExplicit:
		return "explicit"
	case CredentialDisabled:
		return "disabled"
	default:
		return "ambient"
	}
}

// CredentialOverride is the per-call credential choice. The zero value is Ambient.
type CredentialOverride struct {
	kind   CredentialKind
	apiKey string
}

// Ambient defers to the configured key.
func Ambient() CredentialOverride {
	return CredentialOverride{kind: CredentialAmbient}
}

// WithAPIKey uses key for one call. An empty key behaves as Ambient.
func WithAPIKey(key string) CredentialOverride {
	if key == "" {
		return Ambient()
	}
	return CredentialOverride{kind: CredentialExplicit, apiKey: key}
}

// NoRemote disables the remote call.
func NoRemote() CredentialOverride {
	return CredentialOverride{kind: CredentialDisabled}
}

func (o CredentialOverride) Kind() CredentialKind {
	return o.kind
}

// resolve returns the key to use, or "" when no remote call should be made.
func (o CredentialOverride) resolve(ambient string) string {
	switch o.kind {
	case CredentialDisabled:
		return ""
	case CredentialExplicit:
		if o.apiKey != "" {
			return o.apiKey
		}
	}
	return ambient
}
