// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"slices"

	"github.com/dustin/go-humanize"

	"github.com/tfctl/linediff/internal/output"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

func FormatValidator(value any) error {
	return oneOf(value, output.Formats)
}

func FieldsValidator(value any) error {
	return oneOf(value, output.FieldStyles)
}

// SizeValidator accepts human sizes such as 512KB or 2MiB. Zero is rejected.
func SizeValidator(value any) error {
	s, _ := value.(string)
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return fmt.Errorf("invalid size %q: %w", s, err)
	}
	if n == 0 {
		return fmt.Errorf("size must be greater than zero")
	}
	return nil
}

func oneOf(value any, valid []string) error {
	s, _ := value.(string)
	if !slices.Contains(valid, s) {
		return fmt.Errorf("must be one of %v", valid)
	}
	return nil
}
