package calc

import (
	"context"
	"fmt"
)

// ExampleNewEngine demonstrates creating an Engine with different
// arithmetic backends.
func ExampleNewEngine() {
	// Create engines for each backend.
	bignum := NewEngine(&BignumBackend{})
	stdlib := NewEngine(&StdlibBackend{})

	fmt.Println(bignum.Name())
	fmt.Println(stdlib.Name())
	// Output:
	// BigNum (radix-10^4, FFT)
	// StdLib (math/big)
}

// ExampleDefaultFactory demonstrates using the factory to obtain
// pre-registered engines by name.
func ExampleDefaultFactory() {
	factory := NewDefaultFactory()

	// List available backends.
	fmt.Println(factory.List())

	// Get an engine by name.
	eng, err := factory.Get("bignum")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	result, err := eng.Evaluate(context.Background(), nil, 0, "3 4 + 2 *")
	if err != nil {
		fmt.Printf("Evaluation error: %v\n", err)
		return
	}

	fmt.Println(result)
	// Output:
	// [bignum stdlib]
	// 14
}

// ExampleRPNEngine_EvaluateWithObservers demonstrates observer-based
// progress tracking during an evaluation.
func ExampleRPNEngine_EvaluateWithObservers() {
	eng := NewEngine(&BignumBackend{}).(*RPNEngine)

	// Create a subject with a channel observer.
	subject := NewProgressSubject()
	progressChan := make(chan ProgressUpdate, 100)
	subject.Register(NewChannelObserver(progressChan))

	result, err := eng.EvaluateWithObservers(
		context.Background(), subject, 0, "1 3 / 1 6 / +",
	)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	// Drain the progress channel.
	close(progressChan)
	var lastProgress float64
	for update := range progressChan {
		lastProgress = update.Value
	}

	fmt.Println(result)
	fmt.Println(lastProgress)
	// Output:
	// 1/2
	// 1
}

// Example_decimalRendering shows rendering exact rational results with
// a fixed number of decimal digits.
func Example_decimalRendering() {
	eng := NewEngine(&BignumBackend{})

	for _, expr := range []string{"7", "5 4 /", "1 3 /", "-22 7 /"} {
		result, _ := eng.Evaluate(context.Background(), nil, 0, expr)
		dec, _ := result.Decimal(4)
		fmt.Printf("%s = %s\n", expr, dec)
	}
	// Output:
	// 7 = 7.0000
	// 5 4 / = 1.2500
	// 1 3 / = 0.3333
	// -22 7 / = -3.1428
}
