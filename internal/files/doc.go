// Package files groups the input side of the pipeline.
//
// Sub-packages:
//   - filesystem: filesystem abstraction (OS and in-memory) used to open inputs
//   - reader: CSV decoding into msgcat.Table with column type inference
//
// # Usage
//
//	fsProvider := filesystem.NewOSFileSystem()
//	messages, err := reader.New(fsProvider).ReadCSV("disaster_messages.csv")
package files
