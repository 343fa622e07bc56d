/*
Package cif provides utilities to read and write CIF v1.1 files.

The parser produces an ordered datablock model: single tag:value items and
loop_ tables appear in the order they were read, so a file can be modified
in place and serialised again without shuffling its categories. This matters
for mmCIF files, where downstream tools expect the PDBx category order to
survive annotation.

See https://www.iucr.org/resources/cif/spec/version1.1 for a full
description of the CIF v1.1 syntax.
*/
package cif
