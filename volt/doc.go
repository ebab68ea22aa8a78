/*
Package volt holds types shared by the packages reading VOLT project sources
and building OpenType tables from them: source locations and the errors
reported against them.

VOLT (Microsoft Visual OpenType Layout Tool) stores layout rules in a textual
project format. Sub-packages implement a parser for a subset of this format
(`volt/parser`), the rule tree it produces (`volt/ast`), and a builder which
turns the glyph definition rules of a tree into a GDEF table for a font
(`volt/builder`).

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package volt
