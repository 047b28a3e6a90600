package reverb

const defaultDiffusionSteps = 1

type config struct {
	diffusionSteps int
	geometry       float64
}

// Option adjusts how New builds a Reverb.
type Option func(*config)

func defaultConfig() config {
	return config{
		diffusionSteps: defaultDiffusionSteps,
		geometry:       LoopGeometryFactor,
	}
}

// WithDiffusionSteps sets the number of cascaded diffusion stages.
// A single stage (the default) is a plain delay bank; with more stages every
// stage also shuffles, flips and Hadamard-mixes its channels, and each stage
// spans half the time of the previous one.
func WithDiffusionSteps(n int) Option {
	return func(cfg *config) {
		cfg.diffusionSteps = n
	}
}

// WithLoopGeometryFactor overrides the room-size multiplier used to estimate
// the feedback loop period when deriving the decay gain.
func WithLoopGeometryFactor(f float64) Option {
	return func(cfg *config) {
		cfg.geometry = f
	}
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
