package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
)

// ExpectedEnvSchemaVersion is the .env layout this build reads
const ExpectedEnvSchemaVersion = "1.0"

// MaxBNetRequestsPerSecond is the per-client ceiling Battle.net enforces
const MaxBNetRequestsPerSecond = 100

// SupportedBNetRegions have a <region>.api.blizzard.com host and namespaces
var SupportedBNetRegions = []string{"us", "eu", "kr", "tw"}

// RequiredEnvVar is a key with no usable default, with a hint for the error message
type RequiredEnvVar struct {
	Key  string
	Hint string
}

// RequiredEnvVars are checked by ValidateEnv after the schema version
var RequiredEnvVars = []RequiredEnvVar{
	{Key: "BNET_CLIENT_ID", Hint: "create an API client at develop.battle.net"},
	{Key: "BNET_CLIENT_SECRET", Hint: "issued with BNET_CLIENT_ID"},
}

// ValidateEnv fails on a missing or outdated ENV_SCHEMA_VERSION and on missing Battle.net credentials
func ValidateEnv() error {
	schemaVersion := os.Getenv("ENV_SCHEMA_VERSION")
	if schemaVersion == "" {
		return fmt.Errorf("%s (expected %s)", ErrMsgSchemaNotSet, ExpectedEnvSchemaVersion)
	}
	if schemaVersion != ExpectedEnvSchemaVersion {
		return fmt.Errorf("%s: expected %s, got %s", ErrMsgSchemaMismatch, ExpectedEnvSchemaVersion, schemaVersion)
	}

	var missing []string
	for _, v := range RequiredEnvVars {
		if os.Getenv(v.Key) == "" {
			missing = append(missing, fmt.Sprintf("%s (%s)", v.Key, v.Hint))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s: %s", ErrMsgMissingEnvVars, strings.Join(missing, ", "))
	}
	return nil
}

// ValidateEnvWithWarnings runs ValidateEnv, then reports settings that load but will
// likely misbehave against Battle.net or in production
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string

	if pw := os.Getenv("DB_PASSWORD"); pw == "" || pw == "postgres" {
		warnings = append(warnings, WarnMsgDefaultDBPassword)
	}

	if region := strings.ToLower(os.Getenv("BNET_REGION")); region != "" && !slices.Contains(SupportedBNetRegions, region) {
		warnings = append(warnings, fmt.Sprintf("%s: %q (supported: %s)",
			WarnMsgUnsupportedRegion, region, strings.Join(SupportedBNetRegions, ", ")))
	}

	if rps, err := strconv.ParseFloat(os.Getenv("BNET_REQUESTS_PER_SECOND"), 64); err == nil && rps > MaxBNetRequestsPerSecond {
		warnings = append(warnings, fmt.Sprintf("%s: %g > %d", WarnMsgRateAboveLimit, rps, MaxBNetRequestsPerSecond))
	}

	if strings.EqualFold(os.Getenv("ENVIRONMENT"), "prod") && os.Getenv("METRICS_PUSH_URL") == "" {
		warnings = append(warnings, WarnMsgNoPushGateway)
	}

	return warnings, nil
}
