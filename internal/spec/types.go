// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Structured contract specification types

package spec

import (
	"fmt"
	"strings"
)

// Feature is a supported contract capability
type Feature string

const (
	FeatureMintable      Feature = "mintable"
	FeatureBurnable      Feature = "burnable"
	FeatureTransferable  Feature = "transferable"
	FeatureFreezable     Feature = "freezable"
	FeatureRevokable     Feature = "revokable"
	FeaturePausable      Feature = "pausable"
	FeatureCapped        Feature = "capped"
	FeatureOwnable       Feature = "ownable"
	FeatureAccessControl Feature = "access_control"
	FeatureInitialSupply Feature = "initial_supply"
)

// SupportedFeatures lists every feature the generator understands
var SupportedFeatures = []Feature{
	FeatureMintable,
	FeatureBurnable,
	FeatureTransferable,
	FeatureFreezable,
	FeatureRevokable,
	FeaturePausable,
	FeatureCapped,
	FeatureOwnable,
	FeatureAccessControl,
	FeatureInitialSupply,
}

// DefaultDecimals is the SPL-token default decimal count
const DefaultDecimals = 9

// ContractSpec is the structured form of the user's request.
// Produced once by the interpreter stage and read-only afterwards.
type ContractSpec struct {
	Name          string    `json:"name"`
	Symbol        string    `json:"symbol"`
	Description   string    `json:"description,omitempty"`
	Decimals      int       `json:"decimals"`
	Features      []Feature `json:"features"`
	InitialSupply *uint64   `json:"initial_supply,omitempty"`
}

// Validate checks the spec against schema constraints
func (s *ContractSpec) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return &SchemaError{Field: "name", Message: "name is required"}
	}
	if strings.TrimSpace(s.Symbol) == "" {
		return &SchemaError{Field: "symbol", Message: "symbol is required"}
	}
	if len(s.Symbol) > 10 {
		return &SchemaError{Field: "symbol", Message: "symbol too long: " + s.Symbol}
	}
	if s.Decimals < 0 || s.Decimals > 9 {
		return &SchemaError{Field: "decimals", Message: fmt.Sprintf("decimals out of range: %d", s.Decimals)}
	}
	for _, f := range s.Features {
		if !isSupportedFeature(f) {
			return &SchemaError{Field: "features", Message: "unsupported feature: " + string(f)}
		}
	}
	return nil
}

// HasFeature reports whether the spec requests the given feature
func (s *ContractSpec) HasFeature(f Feature) bool {
	for _, have := range s.Features {
		if have == f {
			return true
		}
	}
	return false
}

// SchemaError represents a spec schema violation
type SchemaError struct {
	Field   string
	Message string
}

func (e *SchemaError) Error() string {
	return "invalid spec field " + e.Field + ": " + e.Message
}

func isSupportedFeature(f Feature) bool {
	for _, known := range SupportedFeatures {
		if f == known {
			return true
		}
	}
	return false
}
