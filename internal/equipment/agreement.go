package equipment

import (
	"fmt"
	"strings"
)

// EquipmentValue adalah nilai tetap per unit, satu-satunya sumber kebenaran
// untuk teks agreement dan plafon deduction. Jangan duplikasi per call site.
const EquipmentValue float64 = 500.00

// ClampDeduction mengoreksi (bukan menolak) input di luar rentang.
// Satu-satunya kasus di mana input out-of-range dikoreksi diam-diam.
func ClampDeduction(amount float64) float64 {
	if amount < 0 {
		return 0
	}
	if amount > EquipmentValue {
		return EquipmentValue
	}
	return amount
}

// BuildAgreementText menghasilkan teks agreement yang byte-stable untuk
// kombinasi input yang sama. Teks ini yang dianggap ditandatangani karyawan
// (legal record), jadi template assign dan reassign harus identik.
// Jangan reformat diam-diam.
func BuildAgreementText(equipmentType, number string, serialNumber *string, employeeName string, value float64) string {
	var b strings.Builder

	b.WriteString("EQUIPMENT RESPONSIBILITY AGREEMENT\n\n")
	b.WriteString(fmt.Sprintf("Equipment Type: %s\n", TypeLabel(equipmentType)))
	b.WriteString(fmt.Sprintf("Equipment Number: %s\n", number))
	if serialNumber != nil && *serialNumber != "" {
		b.WriteString(fmt.Sprintf("Serial Number: %s\n", *serialNumber))
	}
	b.WriteString(fmt.Sprintf("Assigned To: %s\n", employeeName))
	b.WriteString(fmt.Sprintf("Equipment Value: $%.2f\n\n", value))

	b.WriteString("1. I acknowledge receipt of the equipment identified above and accept responsibility for its care while it is assigned to me.\n")
	b.WriteString("2. The equipment must remain on company premises at all times and may not be taken home or off-site without written authorization.\n")
	b.WriteString("3. I will report any damage, malfunction, or loss to my supervisor immediately.\n")
	b.WriteString("4. I understand that damage or loss resulting from negligence or misuse may result in a payroll deduction of up to the equipment value stated above, as permitted by applicable law.\n")
	b.WriteString("5. I will return the equipment upon request, reassignment, or separation of employment in the condition it was received, normal wear excepted.\n")

	return b.String()
}
