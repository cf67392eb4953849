package serialization

import "time"

// FormatVersion is the current document version.
const FormatVersion = 1

// Document is the JSON form of a saved network.
type Document struct {
	FormatVersion int            `json:"format_version"` // Version of the document layout
	CreatedAt     time.Time      `json:"created_at"`     // When the file was written
	LearningRate  float64        `json:"learning_rate"`  // η used for training
	Steps         int            `json:"steps"`          // Training steps taken so far
	Tensors       []TensorRecord `json:"tensors"`        // W1, b1, W2, b2
	Checksum      string         `json:"checksum"`       // Hex SHA-256 of the tensor payload
}

// TensorRecord is one named parameter matrix, row-major.
type TensorRecord struct {
	Name  string    `json:"name"`
	Shape []int     `json:"shape"`
	Data  []float64 `json:"data"`
}

// Metadata is the training context stored next to the parameters.
type Metadata struct {
	CreatedAt    time.Time
	LearningRate float64
	Steps        int
}
