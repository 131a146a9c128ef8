package model

// UsageEntry tracks token and request counts for one model over a day.
type UsageEntry struct {
	CachedTokens int64                    `json:"cached_tokens"`
	InputTokens  int64                    `json:"input_tokens"`
	Model        string                   `json:"model"`
	OutputTokens int64                    `json:"output_tokens"`
	Requests     int64                    `json:"requests"`
	Services     map[string]*ServiceUsage `json:"services,omitempty"`
}

// ServiceUsage is the per-API-surface slice of a UsageEntry.
type ServiceUsage struct {
	CachedTokens int64 `json:"cached_tokens"`
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
	Requests     int64 `json:"requests"`
}

// NewUsageEntry returns a zeroed entry for model.
func NewUsageEntry(model string) *UsageEntry {
	return &UsageEntry{Model: model}
}

// Tokens returns input plus output tokens.
func (u *UsageEntry) Tokens() int64 {
	if u == nil {
		return 0
	}
	return u.InputTokens + u.OutputTokens
}

// Service returns the breakdown for name, creating it on first use.
func (u *UsageEntry) Service(name string) *ServiceUsage {
	if u.Services == nil {
		u.Services = make(map[string]*ServiceUsage)
	}
	s, ok := u.Services[name]
	if !ok {
		s = &ServiceUsage{}
		u.Services[name] = s
	}
	return s
}

// Clone returns a deep copy.
func (u *UsageEntry) Clone() *UsageEntry {
	if u == nil {
		return nil
	}
	c := *u
	if u.Services != nil {
		c.Services = make(map[string]*ServiceUsage, len(u.Services))
		for name, s := range u.Services {
			sc := *s
			c.Services[name] = &sc
		}
	}
	return &c
}

// Add accumulates other's counters and service breakdown into u.
func (u *UsageEntry) Add(other *UsageEntry) {
	if other == nil {
		return
	}
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
	u.CachedTokens += other.CachedTokens
	u.Requests += other.Requests
	for name, s := range other.Services {
		dst := u.Service(name)
		dst.InputTokens += s.InputTokens
		dst.OutputTokens += s.OutputTokens
		dst.CachedTokens += s.CachedTokens
		dst.Requests += s.Requests
	}
}
