package equipment_test

import (
	"strings"
	"testing"

	"tireops/internal/equipment"

	"github.com/stretchr/testify/assert"
)

func TestClampDeduction(t *testing.T) {
	assert.Equal(t, 0.0, equipment.ClampDeduction(-50))
	assert.Equal(t, 0.0, equipment.ClampDeduction(0))
	assert.Equal(t, 125.5, equipment.ClampDeduction(125.5))
	assert.Equal(t, equipment.EquipmentValue, equipment.ClampDeduction(equipment.EquipmentValue))
	assert.Equal(t, equipment.EquipmentValue, equipment.ClampDeduction(10000))
}

func TestBuildAgreementText(t *testing.T) {
	serial := "SN-12345"

	t.Run("deterministic for identical input", func(t *testing.T) {
		a := equipment.BuildAgreementText(equipment.TypeScanner, "SCAN-001", &serial, "Budi Santoso", equipment.EquipmentValue)
		b := equipment.BuildAgreementText(equipment.TypeScanner, "SCAN-001", &serial, "Budi Santoso", equipment.EquipmentValue)
		assert.Equal(t, a, b)
	})

	t.Run("contains identifying fields", func(t *testing.T) {
		text := equipment.BuildAgreementText(equipment.TypeScanner, "SCAN-001", &serial, "Budi Santoso", equipment.EquipmentValue)

		assert.Contains(t, text, "Equipment Type: Scanner")
		assert.Contains(t, text, "Equipment Number: SCAN-001")
		assert.Contains(t, text, "Serial Number: SN-12345")
		assert.Contains(t, text, "Assigned To: Budi Santoso")
		assert.Contains(t, text, "Equipment Value: $500.00")
	})

	t.Run("serial line omitted when absent", func(t *testing.T) {
		empty := ""
		withoutSerial := equipment.BuildAgreementText(equipment.TypeVehicle, "FORK-001", nil, "Budi Santoso", equipment.EquipmentValue)
		withEmptySerial := equipment.BuildAgreementText(equipment.TypeVehicle, "FORK-001", &empty, "Budi Santoso", equipment.EquipmentValue)

		assert.NotContains(t, withoutSerial, "Serial Number")
		assert.Equal(t, withoutSerial, withEmptySerial)
	})

	t.Run("all clauses present", func(t *testing.T) {
		text := equipment.BuildAgreementText(equipment.TypeComputer, "PC-007", nil, "Budi Santoso", equipment.EquipmentValue)

		for _, clause := range []string{"1. ", "2. ", "3. ", "4. ", "5. "} {
			assert.True(t, strings.Contains(text, "\n"+clause) || strings.HasPrefix(text, clause),
				"missing clause %q", clause)
		}
	})
}
