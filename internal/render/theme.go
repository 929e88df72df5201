package render

import "image/color"

// Palette
var (
	ColorBackground   = color.RGBA{0x12, 0x12, 0x14, 0xff} // window background
	ColorPanelBg      = color.RGBA{0x22, 0x22, 0x2a, 0xff} // panel body
	ColorPanelHeader  = color.RGBA{0x11, 0x11, 0x16, 0xff}
	ColorPanelBorder  = color.RGBA{0x44, 0x44, 0x50, 0xff}
	ColorCellBg       = color.RGBA{0x18, 0x18, 0x1c, 0xff} // map grid cell
	ColorGridLine     = color.RGBA{0x2a, 0x2a, 0x32, 0xff}
	ColorSelection    = color.RGBA{0x66, 0x88, 0xff, 0x66}
	ColorResizeHandle = color.RGBA{0x55, 0x55, 0x66, 0xff}
	ColorText         = color.RGBA{0xff, 0xff, 0xff, 0xff}
	ColorTextDim      = color.RGBA{0x99, 0x99, 0xa4, 0xff}
	ColorStatusBg     = color.RGBA{0x0c, 0x0c, 0x0e, 0xee}
	ColorMenuBg       = color.RGBA{0x10, 0x10, 0x12, 0xff}
	ColorMenuBorder   = color.RGBA{0x44, 0x44, 0x50, 0xff}
	ColorMenuHover    = color.RGBA{0x33, 0x55, 0xff, 0xff}
	ColorButton       = color.RGBA{0x2c, 0x2c, 0x36, 0xff}
	ColorButtonHover  = color.RGBA{0x3a, 0x3a, 0x48, 0xff}
	ColorFieldBg      = color.RGBA{0x0f, 0x0f, 0x12, 0xff}
	ColorFocus        = color.RGBA{0x66, 0x88, 0xff, 0xff}
	ColorInvalid      = color.RGBA{0xdd, 0x44, 0x44, 0xff}
	ColorConnection   = color.RGBA{0xcc, 0xcc, 0x55, 0xff}
	ColorPort         = color.RGBA{0x88, 0xcc, 0x88, 0xff}
	ColorModalShade   = color.RGBA{0x00, 0x00, 0x00, 0x99}
)

// Layout
const (
	PadX        = 4
	PadY        = 4
	InnerPad    = 6
	BorderWidth = 2
	HeaderH     = 20
	RowH        = 22
	MenuBarH    = 22
	StatusBarH  = 18
	CaretW      = 1
)
