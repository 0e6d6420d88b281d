package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidateCommand_ValidProfile(t *testing.T) {
	binaryPath := getBinaryPath(t)

	path := writeTempJSON(t, "profile.json", `{
  "customer_name": "Acme Robotics",
  "industry": "Manufacturing",
  "company_size": "200-500",
  "pain_points": [
    {"issue": "manual QA", "impact": "high", "business_impact": "slow shipments"}
  ],
  "needs": [
    {"requirement": "automated inspection", "priority": "high"}
  ],
  "decision_criteria": ["accuracy", "integration effort"],
  "budget_range": "Not specified",
  "timeline": "Not specified",
  "communication_style": "professional",
  "decision_makers": [
    {"name": "Dana Ortiz", "role": "VP Operations"}
  ]
}`)

	cmd := exec.Command(binaryPath, "validate", "--in", path, "--kind", "customer_profile")
	output, err := cmd.CombinedOutput()

	assert.NoError(t, err)
	assert.Contains(t, string(output), "valid customer_profile record")
}

func TestValidateCommand_InvalidProfile(t *testing.T) {
	binaryPath := getBinaryPath(t)

	path := writeTempJSON(t, "bad.json", `{"industry": "Manufacturing"}`)

	cmd := exec.Command(binaryPath, "validate", "--in", path, "--kind", "customer_profile")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "failed validation")
	assert.Contains(t, string(output), "customer_name")
}

func TestValidateCommand_UnknownKind(t *testing.T) {
	binaryPath := getBinaryPath(t)

	path := writeTempJSON(t, "any.json", `{}`)

	cmd := exec.Command(binaryPath, "validate", "--in", path, "--kind", "nonsense")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "nonsense")
}

func TestValidateCommand_MissingFile(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "validate", "--in", "missing.json", "--kind", "customer_profile")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "input file not found")
}
