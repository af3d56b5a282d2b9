package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agbru/bigcalc/internal/calc"
)

func TestWriteResultToFile(t *testing.T) {
	t.Parallel()
	// Create temporary directory
	tmpDir := t.TempDir()

	testCases := []struct {
		name        string
		outputFile  string
		expectError bool
		checkFunc   func(t *testing.T, filePath string)
	}{
		{
			name:        "Write result to file",
			outputFile:  filepath.Join(tmpDir, "result.txt"),
			expectError: false,
			checkFunc: func(t *testing.T, filePath string) {
				content, err := os.ReadFile(filePath)
				if err != nil {
					t.Fatalf("Failed to read output file: %v", err)
				}
				contentStr := string(content)
				if !strings.Contains(contentStr, "10 45 + =") {
					t.Error("File should contain '10 45 + ='")
				}
				if !strings.Contains(contentStr, "55") {
					t.Error("File should contain result '55'")
				}
				if !strings.Contains(contentStr, "# Engine: bignum") {
					t.Error("File should record the engine name")
				}
			},
		},
		{
			name:        "Empty output file (no write)",
			outputFile:  "",
			expectError: false,
			checkFunc:   nil, // No file should be created
		},
		{
			name:        "Create nested directory",
			outputFile:  filepath.Join(tmpDir, "nested", "dir", "result.txt"),
			expectError: false,
			checkFunc: func(t *testing.T, filePath string) {
				if _, err := os.Stat(filePath); err != nil {
					t.Errorf("File should exist in nested directory: %v", err)
				}
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			result := calc.Result{Num: "55", Den: "1"}
			config := OutputConfig{
				OutputFile: tc.outputFile,
			}

			err := WriteResultToFile(result, "10 45 +", 100*time.Millisecond, "bignum", config)

			if tc.expectError {
				if err == nil {
					t.Error("Expected error but got none")
				}
			} else {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				if tc.outputFile != "" && tc.checkFunc != nil {
					tc.checkFunc(t, tc.outputFile)
				}
			}
		})
	}
}

func TestWriteResultToFile_Fraction(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()
	outputFile := filepath.Join(tmpDir, "fraction.txt")

	result := calc.Result{Num: "1", Den: "3"}
	config := OutputConfig{OutputFile: outputFile, Precision: 10}

	if err := WriteResultToFile(result, "1 3 /", time.Second, "stdlib", config); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	content, err := os.ReadFile(outputFile)
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}
	contentStr := string(content)
	if !strings.Contains(contentStr, "1/3") {
		t.Error("File should contain the canonical fraction")
	}
	if !strings.Contains(contentStr, "0.3333333333") {
		t.Errorf("File should contain the decimal rendering, got:\n%s", contentStr)
	}
}

func TestFormatQuietResult(t *testing.T) {
	t.Parallel()

	t.Run("Integer", func(t *testing.T) {
		t.Parallel()
		result := calc.Result{Num: "55", Den: "1"}
		output := FormatQuietResult(result, 100*time.Millisecond)
		if output != "55" {
			t.Errorf("Expected '55', got '%s'", output)
		}
	})

	t.Run("Fraction", func(t *testing.T) {
		t.Parallel()
		result := calc.Result{Num: "-22", Den: "7"}
		output := FormatQuietResult(result, time.Second)
		if output != "-22/7" {
			t.Errorf("Expected '-22/7', got '%s'", output)
		}
	})

	t.Run("Large number", func(t *testing.T) {
		t.Parallel()
		large := strings.Repeat("9", 300)
		result := calc.Result{Num: large, Den: "1"}
		output := FormatQuietResult(result, 1*time.Second)
		if output != large {
			t.Errorf("Expected full decimal string, got '%s'", output)
		}
	})
}

func TestDisplayQuietResult(t *testing.T) {
	t.Parallel()
	result := calc.Result{Num: "55", Den: "1"}

	var buf bytes.Buffer
	DisplayQuietResult(&buf, result, 100*time.Millisecond)
	output := buf.String()
	if output != "55\n" {
		t.Errorf("Output should be '55\\n', got '%s'", output)
	}
}

func TestDisplayResultWithConfig(t *testing.T) {
	t.Parallel()
	result := calc.Result{Num: "55", Den: "1"}
	tmpDir := t.TempDir()

	t.Run("Quiet mode", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		config := OutputConfig{
			Quiet: true,
		}
		err := DisplayResultWithConfig(&buf, result, "10 45 +", 100*time.Millisecond, "bignum", config)
		if err != nil {
			t.Errorf("Unexpected error: %v", err)
		}
		output := buf.String()
		if !strings.Contains(output, "55") {
			t.Errorf("Quiet output should contain result, got '%s'", output)
		}
		if strings.Contains(output, "Calculated value") {
			t.Error("Quiet output should not contain the display header")
		}
	})

	t.Run("Normal mode with file output", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		outputFile := filepath.Join(tmpDir, "test_output.txt")
		config := OutputConfig{
			OutputFile: outputFile,
			Quiet:      false,
		}
		err := DisplayResultWithConfig(&buf, result, "10 45 +", 100*time.Millisecond, "bignum", config)
		if err != nil {
			t.Errorf("Unexpected error: %v", err)
		}
		// Check that file was created
		if _, err := os.Stat(outputFile); err != nil {
			t.Errorf("Output file should exist: %v", err)
		}
		// Check that success message was printed
		output := buf.String()
		if !strings.Contains(output, "Result saved to") {
			t.Errorf("Should show file save message, got '%s'", output)
		}
	})

	t.Run("Quiet mode with file output", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		outputFile := filepath.Join(tmpDir, "quiet_output.txt")
		config := OutputConfig{
			OutputFile: outputFile,
			Quiet:      true,
		}
		err := DisplayResultWithConfig(&buf, result, "10 45 +", 100*time.Millisecond, "bignum", config)
		if err != nil {
			t.Errorf("Unexpected error: %v", err)
		}
		// Check that file was created
		if _, err := os.Stat(outputFile); err != nil {
			t.Errorf("Output file should exist: %v", err)
		}
		// In quiet mode, file save message should not appear
		output := buf.String()
		if strings.Contains(output, "Result saved to") {
			t.Error("Quiet mode should not show file save message")
		}
	})

}
