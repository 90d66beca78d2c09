package document

import (
	"fmt"
	"strings"
	"time"
)

// Folder order and names are locked by company policy; do not reorder.
const activeRoot = "/sites/Files/SFG Aluminium/2025 SFG Aluminium"

var pathSanitizer = strings.NewReplacer(
	"<", "_", ">", "_", ":", "_", `"`, "_",
	"/", "_", `\`, "_", "|", "_", "?", "_", "*", "_",
)

// CanonicalPath builds the locked folder path for a document:
// Active/{Base}-{Prefix}/{Customer}/{Project}/{Location}/{ProductType}/{DeliveryType}.
// All seven components are required.
func CanonicalPath(baseNumber string, prefix Prefix, customer, project, location, productType, deliveryType string) (string, error) {
	missing := []string{}
	for _, c := range []struct{ name, value string }{
		{"BaseNumber", baseNumber},
		{"Prefix", prefix.String()},
		{FieldCustomer, customer},
		{FieldProject, project},
		{FieldLocation, location},
		{FieldProductType, productType},
		{FieldDeliveryType, deliveryType},
	} {
		if c.value == "" {
			missing = append(missing, c.name)
		}
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("cannot generate path, missing required fields: %s", strings.Join(missing, ", "))
	}

	parts := []string{
		activeRoot, "Active",
		pathSanitizer.Replace(baseNumber) + "-" + pathSanitizer.Replace(prefix.String()),
		pathSanitizer.Replace(customer),
		pathSanitizer.Replace(project),
		pathSanitizer.Replace(location),
		pathSanitizer.Replace(productType),
		pathSanitizer.Replace(deliveryType),
	}
	return strings.Join(parts, "/"), nil
}

// MonthShortcutPath returns the month-scoped shortcut into the active
// folder, e.g. ".../September 2026/Active".
func MonthShortcutPath(at time.Time) string {
	return fmt.Sprintf("%s/%s %d/Active", activeRoot, at.Month().String(), at.Year())
}
