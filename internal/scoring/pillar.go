package scoring

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"testgenz-result-service/internal/domain"
)

//go:embed pillar_table.yaml
var defaultTableYAML []byte

// PillarTable is the authored mapping from question ordinal to option→pillar
// entries. It is keyed by 1-based question number (presentation order), not by
// question identifier, so re-seeding quiz content does not invalidate it. The
// quiz catalog must therefore keep question order stable and matching the
// table version.
type PillarTable struct {
	Version   int                       `yaml:"version"`
	Weight    int                       `yaml:"weight"`
	Questions map[int]map[string]string `yaml:"questions"`
}

// LoadPillarTable reads and validates a mapping table from a YAML file.
func LoadPillarTable(path string) (*PillarTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pillar table: %w", err)
	}
	return parsePillarTable(data)
}

// DefaultPillarTable returns the table compiled into the binary.
func DefaultPillarTable() *PillarTable {
	table, err := parsePillarTable(defaultTableYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded pillar table invalid: %v", err))
	}
	return table
}

func parsePillarTable(data []byte) (*PillarTable, error) {
	var table PillarTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("unmarshal pillar table: %w", err)
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return &table, nil
}

// Validate checks the table independently of scoring: positive weight,
// question numbers contiguous from 1, option keys within a–c, and pillar
// codes within the RIASEC set.
func (t *PillarTable) Validate() error {
	if t.Weight <= 0 {
		return fmt.Errorf("pillar table: weight must be positive, got %d", t.Weight)
	}
	if len(t.Questions) == 0 {
		return fmt.Errorf("pillar table: no question entries")
	}
	for number := 1; number <= len(t.Questions); number++ {
		entry, ok := t.Questions[number]
		if !ok {
			return fmt.Errorf("pillar table: question numbers not contiguous, missing %d", number)
		}
		for option, pillar := range entry {
			if option != "a" && option != "b" && option != "c" {
				return fmt.Errorf("pillar table: question %d has unknown option %q", number, option)
			}
			if !validPillar(pillar) {
				return fmt.Errorf("pillar table: question %d option %q maps to unknown pillar %q", number, option, pillar)
			}
		}
	}
	return nil
}

// Score accumulates weighted pillar totals for the answer sequence. Each
// answer resolves through (questionIndex+1, lowercased option letter); misses
// contribute zero, so letter D and questions absent from the table are
// silently skipped. All six pillar codes are present in the output.
func (t *PillarTable) Score(answers []domain.Answer) domain.PillarScores {
	scores := make(domain.PillarScores, len(domain.PillarCodes))
	for _, code := range domain.PillarCodes {
		scores[code] = 0
	}
	for _, answer := range answers {
		entry, ok := t.Questions[answer.QuestionIndex+1]
		if !ok {
			continue
		}
		pillar, ok := entry[strings.ToLower(answer.OptionLetter)]
		if !ok {
			continue
		}
		scores[pillar] += t.Weight
	}
	return scores
}

func validPillar(code string) bool {
	for _, c := range domain.PillarCodes {
		if c == code {
			return true
		}
	}
	return false
}
