package vtcore

// decSpecialGraphics maps ASCII bytes 0x60-0x7E to the DEC Special
// Graphics / Line Drawing character set (the glyphs VT100s and their
// descendants use for box drawing when G0/G1 is designated '0').
var decSpecialGraphics = map[rune]rune{
	0x60: '◆', // diamond
	0x61: '▒', // checkerboard
	0x62: '␉', // HT symbol
	0x63: '␌', // FF symbol
	0x64: '␍', // CR symbol
	0x65: '␊', // LF symbol
	0x66: '°', // degree
	0x67: '±', // plus/minus
	0x68: '␤', // NL symbol
	0x69: '␋', // VT symbol
	0x6a: '┘', // bottom-right corner
	0x6b: '┐', // top-right corner
	0x6c: '┌', // top-left corner
	0x6d: '└', // bottom-left corner
	0x6e: '┼', // cross
	0x6f: '⎺', // scan line 1
	0x70: '⎻', // scan line 3
	0x71: '─', // horizontal line
	0x72: '⎼', // scan line 7
	0x73: '⎽', // scan line 9
	0x74: '├', // left tee
	0x75: '┤', // right tee
	0x76: '┴', // bottom tee
	0x77: '┬', // top tee
	0x78: '│', // vertical line
	0x79: '≤', // less-or-equal
	0x7a: '≥', // greater-or-equal
	0x7b: 'π', // pi
	0x7c: '≠', // not-equal
	0x7d: '£', // sterling
	0x7e: '·', // middle dot
}
