package zopfli

import "fmt"

func errInvalidIterations(n int) error {
	return fmt.Errorf("zopfli: invalid iteration count %d: want a positive value", n)
}

func errInvalidBlockSplittingMax(n int) error {
	return fmt.Errorf("zopfli: invalid block splitting max %d: want a non-negative value", n)
}
