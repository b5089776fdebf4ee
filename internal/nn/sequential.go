package nn

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Sequential is a container module that chains multiple modules together.
//
// Each module's output becomes the next module's input. Backward walks the
// modules in reverse, feeding each one the gradient returned by its
// successor.
//
// Example:
//
//	model := nn.NewSequential(dense1, nn.NewReLU(), dense2)
//	logits, err := model.Forward(x)
//	...
//	_, err = model.Backward(dlogits)
//
// This is equivalent to:
//
//	h1, _ := dense1.Forward(x)
//	h2, _ := relu.Forward(h1)
//	logits, _ := dense2.Forward(h2)
type Sequential struct {
	modules []Module
}

// NewSequential creates a new Sequential container.
func NewSequential(modules ...Module) *Sequential {
	return &Sequential{
		modules: modules,
	}
}

// Forward applies all modules in sequence.
func (s *Sequential) Forward(input *mat.Dense) (*mat.Dense, error) {
	output := input
	for i, module := range s.modules {
		var err error
		output, err = module.Forward(output)
		if err != nil {
			return nil, fmt.Errorf("module %d forward: %w", i, err)
		}
	}
	return output, nil
}

// Backward propagates dvalues through all modules in reverse order and
// returns the gradient with respect to the container input.
func (s *Sequential) Backward(dvalues *mat.Dense) (*mat.Dense, error) {
	grad := dvalues
	for i := len(s.modules) - 1; i >= 0; i-- {
		var err error
		grad, err = s.modules[i].Backward(grad)
		if err != nil {
			return nil, fmt.Errorf("module %d backward: %w", i, err)
		}
	}
	return grad, nil
}

// Layers returns the Dense layers in forward order, the modules an optimizer
// updates.
func (s *Sequential) Layers() []*Dense {
	var layers []*Dense
	for _, module := range s.modules {
		if d, ok := module.(*Dense); ok {
			layers = append(layers, d)
		}
	}
	return layers
}

// Add appends a module to the sequence.
func (s *Sequential) Add(module Module) {
	s.modules = append(s.modules, module)
}

// Len returns the number of modules in the sequence.
func (s *Sequential) Len() int {
	return len(s.modules)
}

// Module returns the module at the given index.
func (s *Sequential) Module(index int) (Module, error) {
	if index < 0 || index >= len(s.modules) {
		return nil, fmt.Errorf("sequential: module index %d out of range [0, %d)", index, len(s.modules))
	}
	return s.modules[index], nil
}
