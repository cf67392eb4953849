// Package serialization saves and loads the network's parameters as a
// field-named JSON document.
//
// The document is meant to be read and diffed by humans:
//
//	{
//	  "format_version": 1,
//	  "created_at": "2026-01-02T15:04:05Z",
//	  "learning_rate": 0.01,
//	  "steps": 60000,
//	  "tensors": [
//	    {"name": "Weights1", "shape": [64, 784], "data": [...]},
//	    {"name": "Biases1", "shape": [64, 1], "data": [...]},
//	    {"name": "Weights2", "shape": [10, 64], "data": [...]},
//	    {"name": "Biases2", "shape": [10, 1], "data": [...]}
//	  ],
//	  "checksum": "<hex SHA-256 of the tensor payload>"
//	}
//
// Loading rebuilds every matrix with the exact dimensions it was saved with and fails
// otherwise.
//
// Example usage:
//
//	// Save
//	if err := serialization.Save("model.json", params, serialization.Metadata{LearningRate: 0.01}); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Load
//	params, meta, err := serialization.Load("model.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
package serialization
