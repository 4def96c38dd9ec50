package serial

import (
	"fmt"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// DefaultBaudRate is used when neither flags nor config choose one.
const DefaultBaudRate = 115200

// Port wraps a serial port opened for frame transmission.
type Port struct {
	port     serial.Port
	portName string
	baudRate int
}

// Open opens a serial port at baudRate, 8N1.
func Open(portName string, baudRate int) (*Port, error) {
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open port %s: %w", portName, err)
	}

	return &Port{
		port:     port,
		portName: portName,
		baudRate: baudRate,
	}, nil
}

// Close waits for pending output and closes the port.
func (p *Port) Close() error {
	if p.port == nil {
		return nil
	}
	// Best effort: a failed drain must not keep the port open.
	_ = p.port.Drain()
	return p.port.Close()
}

// Write writes data to the serial port.
func (p *Port) Write(data []byte) (int, error) {
	return p.port.Write(data)
}

// PortName returns the port name.
func (p *Port) PortName() string {
	return p.portName
}

// BaudRate returns the configured baud rate.
func (p *Port) BaudRate() int {
	return p.baudRate
}

// PortInfo describes an available serial port.
type PortInfo struct {
	Name    string
	IsUSB   bool
	VID     string
	PID     string
	Serial  string
	Product string
}

// String formats the port for listing.
func (i PortInfo) String() string {
	if !i.IsUSB {
		return i.Name
	}
	s := fmt.Sprintf("%s [%s:%s]", i.Name, i.VID, i.PID)
	if i.Product != "" {
		s += " " + i.Product
	}
	if i.Serial != "" {
		s += " (" + i.Serial + ")"
	}
	return s
}

// ListPorts returns the available serial ports with USB details when known.
func ListPorts() ([]PortInfo, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list ports: %w", err)
	}

	ports := make([]PortInfo, 0, len(details))
	for _, d := range details {
		ports = append(ports, PortInfo{
			Name:    d.Name,
			IsUSB:   d.IsUSB,
			VID:     d.VID,
			PID:     d.PID,
			Serial:  d.SerialNumber,
			Product: d.Product,
		})
	}
	return ports, nil
}
