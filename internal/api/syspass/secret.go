package syspass

// SecretPrompt asks the user for the vault password. It is invoked at most
// once per process, and only when the configuration carries no password.
type SecretPrompt func() (string, error)

// SecretCache resolves the vault password for secret-touching operations.
// A configured password always wins; otherwise the prompt runs on first use
// and its answer is cached for the remainder of the process. Execution is
// strictly sequential, so plain fields are enough to guarantee the prompt
// never fires twice.
type SecretCache struct {
	configured string
	prompt     SecretPrompt
	cached     string
	asked      bool
}

func NewSecretCache(configured string, prompt SecretPrompt) *SecretCache {
	return &SecretCache{configured: configured, prompt: prompt}
}

// Get returns the vault password, prompting on first use when needed.
func (c *SecretCache) Get() (string, error) {
	if c.configured != "" {
		return c.configured, nil
	}
	if !c.asked {
		value, err := c.prompt()
		if err != nil {
			return "", err
		}
		c.cached = value
		c.asked = true
	}
	return c.cached, nil
}
