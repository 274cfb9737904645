package bconfig

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/relex/gotils/logger"
	"github.com/relex/slog-protocol/util"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

// ConfigHolder holds an interface to the actual Config, whose implementation is chosen by the ".type" property
//
// The medium is used to support YAML unmarshalling of interfaces
type ConfigHolder[C BaseConfig] struct {
	Location string `yaml:"-"`
	Value    C
}

func (holder ConfigHolder[C]) String() string {
	return fmt.Sprint(holder.Value)
}

// IsDefined checks whether a config has been loaded or assigned
func (holder ConfigHolder[C]) IsDefined() bool {
	return !reflect.ValueOf(&holder.Value).Elem().IsZero()
}

// MarshalYAML provides custom marshalling to export readable document
func (holder ConfigHolder[C]) MarshalYAML() (interface{}, error) {
	return holder.Value, nil
}

// UnmarshalYAML provides custom unmarshalling for the implementations of Config
func (holder *ConfigHolder[C]) UnmarshalYAML(value *yaml.Node) error {
	table := getConfigConstructors[C]()

	if value.Kind != yaml.MappingNode || len(value.Content) < 2 {
		return util.NewYamlError(value, ".type is undefined")
	}
	if value.Content[0].Kind != yaml.ScalarNode || value.Content[0].Value != "type" {
		return util.NewYamlErrorf(value, ".type is not the first property, which is: %s", value.Content[0].Value)
	}
	typeName := value.Content[1].Value

	createFunc, found := table[typeName]
	if !found {
		supported := maps.Keys(table)
		slices.Sort(supported)
		return util.NewYamlErrorf(value, ".type: unsupported '%s', must be one of %v", typeName, supported)
	}
	config := createFunc()
	if err := util.DecodeYamlNodeKnownFields(value, config); err != nil {
		return util.NewYamlError(value, err.Error())
	}
	if err := config.VerifyConfig(); err != nil {
		return util.NewYamlErrorf(value, "%s: %s", typeName, err)
	}
	holder.Value = config
	holder.Location = util.GetYamlLocation(value)
	return nil
}

// ConfigCreatorTable provides a map of config types to their constructors
type ConfigCreatorTable[C BaseConfig] map[string]func() C

var (
	typeToConfigCreatorTables = make(map[string]interface{})
	configCreatorTablesMutex  = &sync.Mutex{}
)

// RegisterConfigConstructors registers the list of config constructors for a particular config type
//
// It can only be called once for each type C
func RegisterConfigConstructors[C BaseConfig](newMap ConfigCreatorTable[C]) {
	c := reflect.TypeOf((*C)(nil)).Elem()
	configCreatorTablesMutex.Lock()
	defer configCreatorTablesMutex.Unlock()
	if _, exists := typeToConfigCreatorTables[c.String()]; exists {
		logger.Panicf("already registered %s", c.String())
	}
	typeToConfigCreatorTables[c.String()] = newMap
}

func getConfigConstructors[C BaseConfig]() ConfigCreatorTable[C] {
	c := reflect.TypeOf((*C)(nil)).Elem()
	configCreatorTablesMutex.Lock()
	defer configCreatorTablesMutex.Unlock()
	table, exists := typeToConfigCreatorTables[c.String()]
	if !exists {
		logger.Panicf("not registered %s", c.String())
	}
	return table.(ConfigCreatorTable[C])
}
