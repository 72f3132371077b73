package chain

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// overlayFile models the structure of an optional chains.yaml overlay.
type overlayFile struct {
	Chains []Descriptor `yaml:"chains"`
}

// LoadDescriptors reads a YAML overlay and merges it over the built-in
// dataset. Entries with a chain id already present replace the built-in
// descriptor wholesale; new ids are appended. An empty path returns the
// built-in dataset unchanged.
func LoadDescriptors(path string) ([]Descriptor, error) {
	base := BuiltinDescriptors()
	if strings.TrimSpace(path) == "" {
		return base, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取链数据集失败: %w", err)
	}

	var overlay overlayFile
	if err := yaml.Unmarshal(content, &overlay); err != nil {
		return nil, fmt.Errorf("解析链数据集失败: %w", err)
	}

	index := make(map[uint64]int, len(base))
	for i, d := range base {
		index[d.ID] = i
	}
	for _, d := range overlay.Chains {
		if i, ok := index[d.ID]; ok {
			base[i] = d
			continue
		}
		index[d.ID] = len(base)
		base = append(base, d)
	}
	return base, nil
}
