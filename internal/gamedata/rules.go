package gamedata

import "fmt"

// Rules holds the scoring table loaded from rules.yaml.
type Rules struct {
	StartScore  int `yaml:"start_score"`
	StepCost    int `yaml:"step_cost"`
	DoorBonus   int `yaml:"door_bonus"`
	StairsBonus int `yaml:"stairs_bonus"`
	ExitBonus   int `yaml:"exit_bonus"`
	KeyBonus    int `yaml:"key_bonus"`
	TrapPenalty int `yaml:"trap_penalty"`
}

// LoadRules loads the scoring rules from the embedded rules.yaml file.
func LoadRules() (Rules, error) {
	rules, err := LoadYAML[Rules]("rules.yaml")
	if err != nil {
		return Rules{}, err
	}
	if rules.StartScore <= 0 {
		return Rules{}, fmt.Errorf("rules.yaml: start_score must be positive, got %d", rules.StartScore)
	}
	return rules, nil
}

// MustLoadRules loads the scoring rules, panicking on error.
func MustLoadRules() Rules {
	rules, err := LoadRules()
	if err != nil {
		panic(err)
	}
	return rules
}
