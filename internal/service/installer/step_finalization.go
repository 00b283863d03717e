package installer

// NewFinalizationStep derives the channel switches and default models from
// the answers.
func NewFinalizationStep() Step {
	return &actionStep{
		pending: "Finalizing configuration...",
		run: func(state *InstallState) error {
			finalize(state)
			return nil
		},
	}
}

func finalize(state *InstallState) {
	if state.Is(keyChannel, "telegram") {
		state.EnvVars["CONDO_ENABLE_TELEGRAM"] = "true"
		state.EnvVars["CONDO_ENABLE_CLI"] = "false"
	} else {
		state.EnvVars["CONDO_ENABLE_TELEGRAM"] = "false"
		state.EnvVars["CONDO_ENABLE_CLI"] = "true"
	}

	if state.Is("CONDO_LLM_PROVIDER", "ollama") && state.EnvVars["CONDO_LLM_MODEL"] == "" {
		state.EnvVars["CONDO_LLM_MODEL"] = "llama3.1"
	}
	if state.Is("CONDO_EMBEDDING_PROVIDER", "openai") && state.EnvVars["CONDO_EMBEDDING_MODEL"] == "" {
		state.EnvVars["CONDO_EMBEDDING_MODEL"] = "text-embedding-3-small"
	}

	// The channel choice only drives the switches above.
	delete(state.EnvVars, keyChannel)
}
