package shape

// Scene is an ordered collection of shapes. Order matters for drawing and for
// the order in which query commands report their effects.
type Scene struct {
	Shapes []Shape
}

func (s *Scene) Add(shapes ...Shape) {
	s.Shapes = append(s.Shapes, shapes...)
}

func (s *Scene) Len() int {
	return len(s.Shapes)
}

// Find returns the first shape with the given id.
func (s *Scene) Find(id int) Shape {
	for _, shape := range s.Shapes {
		if shape.ID() == id {
			return shape
		}
	}
	return nil
}

// MaxID is the largest id in the scene, or -1 when it is empty.
func (s *Scene) MaxID() int {
	max := -1
	for _, shape := range s.Shapes {
		if shape.ID() > max {
			max = shape.ID()
		}
	}
	return max
}
