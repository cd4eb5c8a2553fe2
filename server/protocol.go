package main

import (
	"errors"
	"math"

	"fishy-flock/sim"
)

// ClientMessage represents incoming messages from viewers
type ClientMessage struct {
	Type string `json:"type"`
	Seq  uint32 `json:"seq,omitempty"`
}

// WelcomePayload is sent once when a viewer connects
type WelcomePayload struct {
	ID      string
	Width   float64
	Height  float64
	Habitat sim.Habitat
	Agents  int
}

// Binary Protocol Implementation
// Message Types
const (
	MsgTypeWelcome byte = 1
	MsgTypeFrame   byte = 2
	MsgTypePong    byte = 3
)

const (
	habitatCircle    byte = 0
	habitatRectangle byte = 1

	flagFleeing byte = 1

	frameHeaderSize = 1 + 8 + 4
	agentRecordSize = 1 + 1 + 4*4
)

// ErrShortMessage is returned when a binary message is truncated
var ErrShortMessage = errors.New("short message")

// EncodeWelcome encodes the welcome message
func EncodeWelcome(payload WelcomePayload) []byte {
	buf := make([]byte, 0, 1+2+len(payload.ID)+8+8+1+4)
	buf = append(buf, MsgTypeWelcome)
	buf = appendString(buf, payload.ID)
	buf = appendFloat64(buf, payload.Width)
	buf = appendFloat64(buf, payload.Height)
	if payload.Habitat == sim.HabitatRectangle {
		buf = append(buf, habitatRectangle)
	} else {
		buf = append(buf, habitatCircle)
	}
	return appendUint32(buf, uint32(payload.Agents))
}

// EncodePong answers a viewer ping, echoing its sequence number
func EncodePong(seq uint32) []byte {
	return appendUint32([]byte{MsgTypePong}, seq)
}

// EncodeFrame encodes one simulation frame. Positions, headings and sizes
// are sent as float32 for bandwidth.
func EncodeFrame(frame sim.Frame) []byte {
	buf := make([]byte, 0, frameHeaderSize+len(frame.Agents)*agentRecordSize)

	buf = append(buf, MsgTypeFrame)
	buf = appendUint64(buf, frame.Tick)
	buf = appendUint32(buf, uint32(len(frame.Agents)))
	for _, agent := range frame.Agents {
		buf = encodeAgentState(buf, agent)
	}
	return buf
}

func encodeAgentState(buf []byte, agent sim.AgentState) []byte {
	// Flags byte: bit 0 = fleeing
	flags := byte(0)
	if agent.Fleeing {
		flags |= flagFleeing
	}
	buf = append(buf, byte(agent.Kind), flags)
	buf = appendFloat32(buf, float32(agent.X))
	buf = appendFloat32(buf, float32(agent.Y))
	buf = appendFloat32(buf, float32(agent.Heading))
	buf = appendFloat32(buf, float32(agent.Size))
	return buf
}

// DecodeFrame decodes a message produced by EncodeFrame. Agent IDs are not
// carried on the wire and come back empty.
func DecodeFrame(data []byte) (sim.Frame, error) {
	if len(data) < frameHeaderSize || data[0] != MsgTypeFrame {
		return sim.Frame{}, ErrShortMessage
	}
	frame := sim.Frame{Tick: readUint64(data[1:])}
	count := int(readUint32(data[9:]))
	data = data[frameHeaderSize:]
	if len(data) < count*agentRecordSize {
		return sim.Frame{}, ErrShortMessage
	}

	frame.Agents = make([]sim.AgentState, 0, count)
	for i := 0; i < count; i++ {
		rec := data[i*agentRecordSize:]
		frame.Agents = append(frame.Agents, sim.AgentState{
			Kind:    sim.Kind(rec[0]),
			Fleeing: rec[1]&flagFleeing != 0,
			X:       float64(readFloat32(rec[2:])),
			Y:       float64(readFloat32(rec[6:])),
			Heading: float64(readFloat32(rec[10:])),
			Size:    float64(readFloat32(rec[14:])),
		})
	}
	return frame, nil
}

// Helper functions
func appendString(buf []byte, s string) []byte {
	length := uint16(len(s))
	buf = append(buf, byte(length>>8), byte(length))
	return append(buf, s...)
}

func appendFloat32(buf []byte, f float32) []byte {
	return appendUint32(buf, math.Float32bits(f))
}

func appendFloat64(buf []byte, f float64) []byte {
	return appendUint64(buf, math.Float64bits(f))
}

func appendUint32(buf []byte, u uint32) []byte {
	return append(buf, byte(u>>24), byte(u>>16), byte(u>>8), byte(u))
}

func appendUint64(buf []byte, u uint64) []byte {
	return append(buf, byte(u>>56), byte(u>>48), byte(u>>40), byte(u>>32),
		byte(u>>24), byte(u>>16), byte(u>>8), byte(u))
}

func readUint32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func readUint64(b []byte) uint64 {
	return uint64(readUint32(b))<<32 | uint64(readUint32(b[4:]))
}

func readFloat32(b []byte) float32 {
	return math.Float32frombits(readUint32(b))
}
