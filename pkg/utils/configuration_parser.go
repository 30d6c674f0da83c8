package utils

import (
	"os"
	"path/filepath"

	"github.com/janael-pinheiro/sensorhub/pkg/entities"
	"gopkg.in/yaml.v2"
)

type config interface {
	entities.HubConfig
}

func readTextFile(filepathName string) ([]byte, error) {
	fileContent, err := os.ReadFile(filepath.Clean(filepathName))
	return fileContent, err
}

// ConfigurationParser decodes a YAML file over configEntity, so fields the
// file leaves out keep their incoming values.
func ConfigurationParser[T config](filepathName string, configEntity T) (T, error) {
	fileContent, err := readTextFile(filepathName)
	if err != nil {
		return configEntity, err
	}

	err = yaml.UnmarshalStrict(fileContent, &configEntity)
	return configEntity, err
}
