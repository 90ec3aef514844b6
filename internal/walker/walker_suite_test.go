package walker_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestWalker(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Walker Suite")
}
