package pkg

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateReportID - generates a unique identifier for a tournament report.
func GenerateReportID() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(99999999))
	if err != nil {
		return "", fmt.Errorf("failed to generate report id: %w", err)
	}

	return fmt.Sprintf("%08d", n.Int64()), nil
}
