package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
)

// ErrLoadingLoanPolicyFailed is returned when a policy file cannot be read or parsed.
var ErrLoadingLoanPolicyFailed = errors.New("loading loan policy failed")

// loanPolicyFile is the YAML shape of a policy file. Absent keys keep the default value.
//
//	loan_period: 336h
//	extension_period: 168h
//	fee_per_day: "1.00"
//	max_extensions: 2
//	borrow_limits:
//	  standard: 3
//	  privileged: 5
//	allow_category_change_over_limit: false
type loanPolicyFile struct {
	LoanPeriod                   *string        `yaml:"loan_period"`
	ExtensionPeriod              *string        `yaml:"extension_period"`
	FeePerDay                    *string        `yaml:"fee_per_day"`
	MaxExtensions                *int           `yaml:"max_extensions"`
	BorrowLimits                 map[string]int `yaml:"borrow_limits"`
	AllowCategoryChangeOverLimit *bool          `yaml:"allow_category_change_over_limit"`
}

// LoadLoanPolicy reads a YAML policy file on top of core.DefaultLoanPolicy.
// An empty path returns the default policy.
func LoadLoanPolicy(path string) (core.LoanPolicy, error) {
	if path == "" {
		return core.DefaultLoanPolicy(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return core.LoanPolicy{}, errors.Join(ErrLoadingLoanPolicyFailed, err)
	}

	return ParseLoanPolicy(raw)
}

// ParseLoanPolicy parses YAML policy content on top of core.DefaultLoanPolicy and validates the result.
func ParseLoanPolicy(raw []byte) (core.LoanPolicy, error) {
	var file loanPolicyFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return core.LoanPolicy{}, errors.Join(ErrLoadingLoanPolicyFailed, err)
	}

	policy := core.DefaultLoanPolicy()

	if file.LoanPeriod != nil {
		d, err := time.ParseDuration(*file.LoanPeriod)
		if err != nil {
			return core.LoanPolicy{}, fmt.Errorf("%w: loan_period: %w", ErrLoadingLoanPolicyFailed, err)
		}
		policy.LoanPeriod = d
	}

	if file.ExtensionPeriod != nil {
		d, err := time.ParseDuration(*file.ExtensionPeriod)
		if err != nil {
			return core.LoanPolicy{}, fmt.Errorf("%w: extension_period: %w", ErrLoadingLoanPolicyFailed, err)
		}
		policy.ExtensionPeriod = d
	}

	if file.FeePerDay != nil {
		fee, err := core.ParseMoney(*file.FeePerDay)
		if err != nil {
			return core.LoanPolicy{}, fmt.Errorf("%w: fee_per_day: %w", ErrLoadingLoanPolicyFailed, err)
		}
		policy.FeePerDay = fee
	}

	if file.MaxExtensions != nil {
		policy.MaxExtensions = *file.MaxExtensions
	}

	for name, limit := range file.BorrowLimits {
		category, err := core.ParseCategory(name)
		if err != nil {
			return core.LoanPolicy{}, fmt.Errorf("%w: borrow_limits: %w", ErrLoadingLoanPolicyFailed, err)
		}
		policy.BorrowLimits[category] = limit
	}

	if file.AllowCategoryChangeOverLimit != nil {
		policy.AllowCategoryChangeOverLimit = *file.AllowCategoryChangeOverLimit
	}

	if err := policy.Validate(); err != nil {
		return core.LoanPolicy{}, errors.Join(ErrLoadingLoanPolicyFailed, err)
	}

	return policy, nil
}
