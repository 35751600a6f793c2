package daifugo

// Rules are the optional-rule toggles the engine and validator consult.
// The yaml tags bind the rules section of the arbiter config file.
type Rules struct {
	Revolution   bool `yaml:"revolution"`
	EightStop    bool `yaml:"eight_stop"`
	Lock         bool `yaml:"lock"`
	CardExchange bool `yaml:"card_exchange"`
	Spade3Joker  bool `yaml:"spade3_joker"`
	Sennichite   bool `yaml:"sennichite"`
	ElevenBack   bool `yaml:"eleven_back"`
}

// DefaultRules enables the standard tournament rule set. 11-back is the
// one optional rule that defaults off.
func DefaultRules() Rules {
	return Rules{
		Revolution:   true,
		EightStop:    true,
		Lock:         true,
		CardExchange: true,
		Spade3Joker:  true,
		Sennichite:   true,
		ElevenBack:   false,
	}
}
