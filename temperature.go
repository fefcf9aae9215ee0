package emote

// DefaultTemperature biases the model toward deterministic classification.
const DefaultTemperature float32 = 0.2
