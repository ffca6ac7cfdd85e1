package optionmodels

import "fmt"

type OptionType string

func (o OptionType) Validate() error {
	if o != OptionTypeCall && o != OptionTypePut {
		return fmt.Errorf("OptionType: Validate: invalid option type: %s", o)
	}

	return nil
}

const (
	OptionTypeCall OptionType = "call"
	OptionTypePut  OptionType = "put"
)
