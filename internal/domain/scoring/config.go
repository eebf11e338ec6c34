package scoring

// DefaultDiscoveryBatch caps how many missing names one dispatch carries.
const DefaultDiscoveryBatch = 20

// Config holds runtime knobs for the scoring service.
type Config struct {
	Weights        Weights
	DiscoveryBatch int
}
