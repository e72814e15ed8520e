package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/donut"
)

// chartFile is a chart on disk: the data and the configuration. Fields
// missing from the file keep their defaults.
type chartFile struct {
	Sectors []donut.Sector `toml:"sectors" yaml:"sectors" json:"sectors"`
	Config  donut.Config   `toml:"config" yaml:"config" json:"config"`
}

var supportedExtensions = []string{"toml", "yaml", "yml", "json"}

func defaultChartFile() chartFile {
	return chartFile{
		Sectors: []donut.Sector{
			{Label: "Супермаркеты", Value: 33, Color: "#FE788B"},
			{Label: "Аптеки", Value: 30, Color: "#76E1A1"},
			{Label: "Переводы", Value: 26, Color: "#4FC5DF"},
			{Label: "Остальное", Value: 2, Color: "#B4CDDB"},
			{Label: "Фастфуд", Value: 8, Color: "#FF9675"},
			{Label: "Транспорт", Value: 1, Color: "#6489F1"},
		},
		Config: donut.DefaultConfig(),
	}
}

// loadChartFile reads the chart at path. An empty path means the demo
// chart.
func loadChartFile(path string) (chartFile, error) {
	if path == "" {
		return defaultChartFile(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return chartFile{}, err
	}
	f := chartFile{Config: donut.DefaultConfig()}
	if err := unmarshalChartFile(path, data, &f); err != nil {
		return chartFile{}, fmt.Errorf("%s: %w", path, err)
	}
	if len(f.Sectors) == 0 {
		return chartFile{}, fmt.Errorf("%s: %w", path, donut.ErrNoSectors)
	}
	return f, nil
}

func fileExt(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

func unsupportedExt(path string) error {
	return errors.New("chart file must have one of supported extensions: " + strings.Join(supportedExtensions, ", ") + ", got " + path)
}

func unmarshalChartFile(path string, data []byte, f *chartFile) error {
	switch fileExt(path) {
	case "toml":
		return toml.Unmarshal(data, f)
	case "yaml", "yml":
		return yaml.Unmarshal(data, f)
	case "json":
		return json.Unmarshal(data, f)
	default:
		return unsupportedExt(path)
	}
}

func marshalChartFile(path string, f chartFile) ([]byte, error) {
	switch fileExt(path) {
	case "toml":
		return toml.Marshal(f)
	case "yaml", "yml":
		return yaml.Marshal(f)
	case "json":
		return json.MarshalIndent(f, "", "  ")
	default:
		return nil, unsupportedExt(path)
	}
}

// newChart builds a chart from the file at path.
func newChart(path string, opts ...donut.ChartOption) (*donut.Chart, error) {
	f, err := loadChartFile(path)
	if err != nil {
		return nil, err
	}
	return donut.NewChart(f.Sectors, f.Config, opts...)
}
