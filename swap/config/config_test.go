package config_test

import (
	"testing"

	"github.com/meenmo/molibsim/swap/config"
)

func TestGetConfigDefaultsToDefaultConfig(t *testing.T) {
	got := config.GetConfig()
	if got != config.DefaultConfig {
		t.Fatalf("GetConfig() = %+v, want DefaultConfig %+v", got, config.DefaultConfig)
	}
}

func TestSetConfigReplacesActiveConfig(t *testing.T) {
	orig := config.GetConfig()
	defer config.SetConfig(orig)

	custom := config.Config{
		ConvergenceTolerance:   1e-6,
		MaxBootstrapIterations: 5,
		MaxSpreadIterations:    2,
		DampingFactor:          0.25,
		MaxPaymentDates:        50,
		MinDiscountFactor:      1e-6,
		DerivativeThreshold:    1e-10,
		PVToleranceMultiplier:  1e-8,
	}
	config.SetConfig(custom)

	if got := config.GetConfig(); got != custom {
		t.Fatalf("GetConfig() = %+v, want %+v", got, custom)
	}
}
