package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Chrome palette. Dark slate surfaces with a muted blue accent so the
// tinted canvas stays the brightest thing on screen.
var (
	colPanel     = color.RGBA{R: 36, G: 39, B: 46, A: 255}
	colSurface   = color.RGBA{R: 54, G: 58, B: 66, A: 255}
	colSurfaceHi = color.RGBA{R: 70, G: 75, B: 84, A: 255}
	colSurfaceLo = color.RGBA{R: 44, G: 47, B: 54, A: 255}
	colAccent    = color.RGBA{R: 96, G: 144, B: 220, A: 255}
	colAccentDim = color.RGBA{R: 66, G: 99, B: 150, A: 255}
	colText      = color.RGBA{R: 224, G: 227, B: 232, A: 255}
	colTextFaded = color.RGBA{R: 138, G: 143, B: 150, A: 255}
)

// solidNineSlice returns a solid color *image.NineSlice for widget backgrounds.
func solidNineSlice(c color.Color) *image.NineSlice {
	return image.NewNineSliceColor(c)
}

func editorButtonImage() *widget.ButtonImage {
	return &widget.ButtonImage{
		Idle:    solidNineSlice(colSurface),
		Hover:   solidNineSlice(colSurfaceHi),
		Pressed: solidNineSlice(colAccentDim),
	}
}

func newEditorTheme(fontFace *text.Face) *widget.Theme {
	return &widget.Theme{
		ListTheme: &widget.ListParams{
			EntryFace: fontFace,
			EntryColor: &widget.ListEntryColor{
				Unselected:          colText,
				Selected:            color.White,
				DisabledUnselected:  colTextFaded,
				DisabledSelected:    colTextFaded,
				SelectingBackground: colAccentDim,
				SelectedBackground:  colAccent,
			},
			ScrollContainerImage: &widget.ScrollContainerImage{
				Idle: solidNineSlice(colSurfaceLo),
				Mask: solidNineSlice(colSurfaceLo),
			},
		},
		PanelTheme: &widget.PanelParams{
			BackgroundImage: solidNineSlice(colPanel),
		},
		ButtonTheme: &widget.ButtonParams{
			Image:    editorButtonImage(),
			TextFace: fontFace,
			TextColor: &widget.ButtonTextColor{
				Idle:     colText,
				Hover:    color.White,
				Pressed:  color.White,
				Disabled: colTextFaded,
			},
		},
		SliderTheme: &widget.SliderParams{
			TrackImage: &widget.SliderTrackImage{
				Idle:  solidNineSlice(colSurfaceLo),
				Hover: solidNineSlice(colSurface),
			},
			HandleImage: &widget.ButtonImage{
				Idle:    solidNineSlice(colAccentDim),
				Hover:   solidNineSlice(colAccent),
				Pressed: solidNineSlice(colAccent),
			},
		},
	}
}
