// Package idx loads MNIST-style datasets stored in the IDX binary format.
//
// An IDX pair is an image file (magic 2051, big-endian count/rows/cols,
// then unsigned pixel bytes) and a label file (magic 2049, big-endian count,
// then one byte per label). Load keeps the first k pairs in file order,
// normalizes pixels to [0,1] and one-hot encodes labels.
package idx
