package snake

// Port is an outbound command sink. Send must not block and the controller
// never looks at what happens to the command afterwards.
type Port interface {
	Send(e Event)
}

// PortFunc adapts an ordinary function to a Port.
type PortFunc func(e Event)

func (f PortFunc) Send(e Event) { f(e) }

// Discard drops every command.
var Discard Port = PortFunc(func(Event) {})

// Tee returns a Port that forwards each command to every port in order.
func Tee(ports ...Port) Port {
	return PortFunc(func(e Event) {
		for _, p := range ports {
			if p != nil {
				p.Send(e)
			}
		}
	})
}
