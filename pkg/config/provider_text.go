package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chrissnell/wildfire/pkg/behave"
)

// TextProvider implements ScenarioProvider for the legacy properties format:
// one "key = mean [stdv]" line per input, keyed by the canonical input keys,
// plus "name", "dynamic" and "nodata". Lines starting with # or ! are
// comments; ':' may replace '='.
type TextProvider struct {
	filename string
}

// NewTextProvider creates a new text scenario provider
func NewTextProvider(filename string) *TextProvider {
	return &TextProvider{filename: filename}
}

// LoadScenario loads the scenario from the text file
func (p *TextProvider) LoadScenario() (*ScenarioData, error) {
	f, err := os.Open(p.filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseText(f)
}

// ParseText reads a scenario in the legacy properties format.
func ParseText(r io.Reader) (*ScenarioData, error) {
	sd := &ScenarioData{Server: DefaultServerData()}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' || line[0] == '!' {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			key, value, ok = strings.Cut(line, ":")
		}
		if !ok {
			return nil, fmt.Errorf("config: line %d: expected key = value", lineNo)
		}
		key = strings.TrimSpace(key)
		fields := strings.Fields(value)
		if len(fields) == 0 {
			return nil, fmt.Errorf("config: line %d: missing value for %q", lineNo, key)
		}

		switch key {
		case "name":
			sd.Name = strings.Join(fields, " ")
			continue
		case "dynamic":
			b, err := strconv.ParseBool(fields[0])
			if err != nil {
				return nil, fmt.Errorf("config: line %d: dynamic: %w", lineNo, err)
			}
			sd.Fuel.Dynamic = b
			continue
		}

		nums := make([]float64, len(fields))
		for i, s := range fields {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("config: line %d: %s: %w", lineNo, key, err)
			}
			nums[i] = v
		}

		if key == "nodata" {
			nd := nums[0]
			sd.NoData = &nd
			continue
		}

		in, err := behave.ParseInput(key)
		if err != nil {
			return nil, fmt.Errorf("config: line %d: %w", lineNo, err)
		}
		if len(nums) > 2 {
			return nil, fmt.Errorf("config: line %d: %s takes a mean and an optional stdv", lineNo, key)
		}
		sd.setInput(in, nums[0])
		if len(nums) == 2 && nums[1] != 0 {
			if sd.StdDev == nil {
				sd.StdDev = make(map[string]float64)
			}
			sd.StdDev[key] = nums[1]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return sd, nil
}
