// Package shape defines the polyomino pieces players drop onto the board.
//
// # Overview
//
// A [Shape] is an immutable rows×cols boolean matrix where true marks an
// occupied cell, tagged with a name and a hex color. Shapes carry no
// position; the placement package aligns a shape's top-left matrix cell
// with an anchor on the board.
//
// # Catalog
//
// [Catalog] returns the built-in pieces in a fixed order:
//
//	square   ##    line  ###    T   ###    L  ##
//	         ##                     .#.       #.
//
//	zigzag  ##.    long  #     corner  ###
//	        .##          #             #..
//	                     #
//	                     #
//
// Custom catalogs can be built with [Parse] from text patterns, which is how
// the configuration file defines additional pieces.
//
// # Rotation
//
// [RotateClockwise] returns a new cols×rows shape computed as
// new[i][j] = old[rows-1-j][i]. Four rotations return exactly the original
// matrix, for square and non-square shapes alike. The receiver is never
// modified; holders replace their reference with the rotated value.
package shape
