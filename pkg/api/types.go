package api

// APIResponse is the envelope every endpoint responds with.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ServerConfig holds the HTTP-layer configuration for Server.
type ServerConfig struct {
	Port int
	Bind string
}

// keyResponse is returned by GET /api/v1/keys/{key}.
type keyResponse struct {
	Key   string `json:"key"`
	Found bool   `json:"found"`
}

// statsResponse is returned by GET /api/v1/stats.
type statsResponse struct {
	Size     int `json:"size"`
	NumTiers int `json:"num_tiers"`
}

// treeResponse is returned by GET /api/v1/tree.
type treeResponse struct {
	Dump string `json:"dump"`
}
