// Package raster implements the image-processing steps that feed the
// trace pipeline: grayscale conversion, Gaussian and Laplacian-of-Gaussian
// filtering, Canny-style edge detection, morphological thinning, and a
// simple background mask.
//
// All operations work on *image.Gray. Binary masks use 0 for background
// and 255 for foreground. Inputs are never modified; every function
// returns a new image.
package raster
