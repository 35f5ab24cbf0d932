// Package state reads machine configuration: initial coin and item counts, log level.
package state

import (
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl"
	"github.com/juju/errors"
	"github.com/temoto/vendcore/helpers"
	"github.com/temoto/vendcore/internal/catalog"
	"github.com/temoto/vendcore/log2"
)

type Config struct {
	// includeSeen contains absolute paths to prevent include loops
	includeSeen map[string]struct{}
	// only used for Unmarshal, do not access
	XXX_Include []ConfigSource `hcl:"include"`

	Log struct {
		Level string `hcl:"level"`
	}
	Money struct {
		Coins []SeedCount `hcl:"coin"`
	}
	Inventory struct {
		Items []SeedCount `hcl:"item"`
	}
}

type ConfigSource struct {
	Name     string `hcl:"name,key"`
	Optional bool   `hcl:"optional"`
}

// SeedCount is initial count of one coin or item, later entries with same name win.
type SeedCount struct {
	Name  string `hcl:"name,key"`
	Count int    `hcl:"count"`
}

func (s SeedCount) String() string { return fmt.Sprintf("%s:%d", s.Name, s.Count) }

// Seed is resolved construction-time content of machine inventories.
type Seed struct {
	Cash  map[catalog.Denomination]uint
	Items map[catalog.Product]uint
}

// DefaultSource is the factory setup: only 3 pennies for change and a single soda.
const DefaultSource = `
money {
	coin "quarter" { count = 0 }
	coin "dime"    { count = 0 }
	coin "nickel"  { count = 0 }
	coin "penny"   { count = 3 }
}
inventory {
	item "coke"  { count = 5 }
	item "pepsi" { count = 5 }
	item "soda"  { count = 1 }
}
`

func DefaultConfig() *Config {
	c, err := ParseConfig(DefaultSource)
	if err != nil {
		panic("code error DefaultSource: " + errors.ErrorStack(err))
	}
	return c
}

// ParseConfig reads single inline source, include is not supported here.
func ParseConfig(source string) (*Config, error) {
	c := &Config{includeSeen: make(map[string]struct{})}
	if err := hcl.Decode(c, source); err != nil {
		return nil, errors.Annotate(err, "config parse")
	}
	if len(c.XXX_Include) != 0 {
		return nil, errors.NotSupportedf("config include in inline source")
	}
	return c, nil
}

func (c *Config) LogLevel() (log2.Level, error) {
	level, err := log2.ParseLevel(c.Log.Level)
	return level, errors.Annotate(err, "config log.level")
}

func (c *Config) Seed() (Seed, error) {
	s := Seed{
		Cash:  make(map[catalog.Denomination]uint, len(c.Money.Coins)),
		Items: make(map[catalog.Product]uint, len(c.Inventory.Items)),
	}
	errs := make([]error, 0)
	for _, sc := range c.Money.Coins {
		d, err := catalog.DenominationByName(sc.Name)
		if err != nil {
			errs = append(errs, errors.Annotatef(err, "config money.coin"))
			continue
		}
		if sc.Count < 0 {
			errs = append(errs, errors.NotValidf("config money.coin=%s count=%d", sc.Name, sc.Count))
			continue
		}
		s.Cash[d] = uint(sc.Count)
	}
	for _, sc := range c.Inventory.Items {
		p, err := catalog.ProductByCode(sc.Name)
		if err != nil {
			errs = append(errs, errors.Annotatef(err, "config inventory.item"))
			continue
		}
		if sc.Count < 0 {
			errs = append(errs, errors.NotValidf("config inventory.item=%s count=%d", sc.Name, sc.Count))
			continue
		}
		s.Items[p] = uint(sc.Count)
	}
	return s, helpers.FoldErrors(errs)
}

func (c *Config) read(log *log2.Log, fs FullReader, source ConfigSource, errs *[]error) {
	norm := fs.Normalize(source.Name)
	if _, ok := c.includeSeen[norm]; ok {
		*errs = append(*errs, errors.Errorf("config duplicate source=%s", source.Name))
		return
	}
	log.Debugf("config reading source='%s' path=%s", source.Name, norm)
	c.includeSeen[norm] = struct{}{}

	bs, err := fs.ReadAll(norm)
	if bs == nil && err == nil {
		if !source.Optional {
			err = errors.NotFoundf("config required name=%s path=%s", source.Name, norm)
			*errs = append(*errs, err)
		}
		return
	}
	if err != nil {
		*errs = append(*errs, errors.Annotatef(err, "config source=%s", source.Name))
		return
	}

	err = hcl.Unmarshal(bs, c)
	if err != nil {
		err = errors.Annotatef(err, "config unmarshal source=%s", source.Name)
		*errs = append(*errs, err)
		return
	}

	var includes []ConfigSource
	includes, c.XXX_Include = c.XXX_Include, nil
	for _, include := range includes {
		includeNorm := fs.Normalize(include.Name)
		if _, ok := c.includeSeen[includeNorm]; ok {
			err = errors.Errorf("config include loop: from=%s include=%s", source.Name, include.Name)
			*errs = append(*errs, err)
			continue
		}
		c.read(log, fs, include, errs)
	}
}

func ReadConfig(log *log2.Log, fs FullReader, names ...string) (*Config, error) {
	if len(names) == 0 {
		return nil, errors.New("code error ReadConfig() without names")
	}

	c := &Config{
		includeSeen: make(map[string]struct{}),
	}
	errs := make([]error, 0, 8)
	for _, name := range names {
		c.read(log, fs, ConfigSource{Name: name}, &errs)
	}
	return c, helpers.FoldErrors(errs)
}

// ReadConfigFile resolves includes relative to directory of path.
func ReadConfigFile(log *log2.Log, path string) (*Config, error) {
	dir, name := filepath.Split(path)
	fs, err := NewOsFullReader(dir)
	if err != nil {
		return nil, err
	}
	return ReadConfig(log, fs, name)
}

func MustReadConfig(log *log2.Log, path string) *Config {
	c, err := ReadConfigFile(log, path)
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
	return c
}
