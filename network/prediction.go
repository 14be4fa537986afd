package network

import (
	"github.com/automoto/doomerang-arena/shared/gamemath"
	"github.com/automoto/doomerang-arena/shared/messages"
)

const predictionBufferSize = 64

// InputRecord stores an input alongside the predicted position after applying it.
type InputRecord struct {
	Input     messages.PlayerInput
	Predicted gamemath.Vec2
}

// PredictionBuffer is a ring buffer of recent inputs and their predicted
// outcomes, used to decide when the server disagrees enough to snap.
type PredictionBuffer struct {
	history [predictionBufferSize]InputRecord
	nextSeq uint32
}

// Next returns a fresh input carrying the next sequence number.
func (pb *PredictionBuffer) Next() messages.PlayerInput {
	return messages.PlayerInput{Sequence: pb.nextSeq}
}

// Store saves an input and the resulting predicted position.
func (pb *PredictionBuffer) Store(input messages.PlayerInput, predicted gamemath.Vec2) {
	idx := input.Sequence % predictionBufferSize
	pb.history[idx] = InputRecord{
		Input:     input,
		Predicted: predicted,
	}
	pb.nextSeq = input.Sequence + 1
}

// Get retrieves a stored record by sequence number. Returns false if not found
// or if the slot has been overwritten.
func (pb *PredictionBuffer) Get(seq uint32) (InputRecord, bool) {
	idx := seq % predictionBufferSize
	record := pb.history[idx]
	if record.Input.Sequence != seq || seq >= pb.nextSeq {
		return InputRecord{}, false
	}
	return record, true
}

// NextSeq returns the next expected sequence number.
func (pb *PredictionBuffer) NextSeq() uint32 {
	return pb.nextSeq
}

// PredictionError is the distance between what we predicted after seq and
// where the server says we are.
func (pb *PredictionBuffer) PredictionError(seq uint32, server gamemath.Vec2) float64 {
	record, ok := pb.Get(seq)
	if !ok {
		return 0
	}
	return record.Predicted.Sub(server).Len()
}
