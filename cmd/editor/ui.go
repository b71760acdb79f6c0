package main

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/milk9111/leveledit/history"
	"github.com/milk9111/leveledit/tools"
)

// buildUI assembles the editor chrome: the floating toolbar, the left panel
// with file, layer, palette, entity and action sections. Everything routes
// back into the same engine paths the hotkeys use.
func (g *EditorGame) buildUI() {
	ui := &ebitenui.UI{}

	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic("Failed to load font: " + err.Error())
	}
	var fontFace text.Face = &text.GoTextFace{Source: s, Size: 14}
	ui.PrimaryTheme = newEditorTheme(&fontFace)

	toolbarContainer, toolBar := buildToolBar(ui.PrimaryTheme, &fontFace, func(t tools.Tool) {
		g.setTool(t)
	}, g.state.CurrentTool)

	leftPanel := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(leftPanelWidth, 400),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(colPanel)),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(8),
				widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: 8, Right: 8}),
			),
		),
	)

	g.addFileSection(leftPanel, ui.PrimaryTheme, &fontFace)
	g.addLayersSection(leftPanel, ui.PrimaryTheme, &fontFace)
	g.addPaletteSection(leftPanel, ui.PrimaryTheme, &fontFace)
	g.addEntitySection(leftPanel, ui.PrimaryTheme, &fontFace)
	g.addActionsSection(leftPanel, ui.PrimaryTheme, &fontFace)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	leftPanel.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionStart,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchVertical:    true,
	}
	toolbarContainer.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionStart,
	}
	root.AddChild(leftPanel)
	root.AddChild(toolbarContainer)
	ui.Container = root

	g.ui = ui
	g.toolBar = toolBar
	g.layerPanel.Refresh(g.state)
}

func sectionLabel(fontFace *text.Face, label string) *widget.Label {
	return widget.NewLabel(
		widget.LabelOpts.Text(label, fontFace, &widget.LabelColor{Idle: colText, Disabled: colTextFaded}),
	)
}

func buttonRow(spacing int) *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(spacing),
			),
		),
	)
}

func panelButton(theme *widget.Theme, fontFace *text.Face, label string, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text(label, fontFace, theme.ButtonTheme.TextColor),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if onClick != nil {
				onClick()
			}
		}),
	)
}

func (g *EditorGame) addFileSection(parent *widget.Container, theme *widget.Theme, fontFace *text.Face) {
	parent.AddChild(sectionLabel(fontFace, "File"))

	fileNameInput := widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(leftPanelWidth-20, 28),
		),
		widget.TextInputOpts.Image(&widget.TextInputImage{
			Idle:     solidNineSlice(color.RGBA{245, 245, 245, 255}),
			Disabled: solidNineSlice(color.RGBA{200, 200, 200, 255}),
		}),
		widget.TextInputOpts.Color(&widget.TextInputColor{
			Idle:     color.Black,
			Disabled: color.Gray{Y: 120},
			Caret:    color.Black,
		}),
		widget.TextInputOpts.Face(fontFace),
	)
	if g.savePath != "" {
		fileNameInput.SetText(g.savePath)
	}
	parent.AddChild(fileNameInput)
	g.fileNameInput = fileNameInput

	row := buttonRow(6)
	row.AddChild(panelButton(theme, fontFace, "Save", g.saveLevel))
	row.AddChild(panelButton(theme, fontFace, "Load", g.loadLevel))
	parent.AddChild(row)
}

func (g *EditorGame) addLayersSection(parent *widget.Container, theme *widget.Theme, fontFace *text.Face) {
	parent.AddChild(sectionLabel(fontFace, "Layers"))

	layerPanel := NewLayerPanel()
	layerList := widget.NewList(
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			if entry, ok := e.(LayerEntry); ok {
				return entry.Label
			}
			return ""
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			entry, ok := args.Entry.(LayerEntry)
			if !ok || layerPanel.suppressEvents {
				return
			}
			g.state.ActiveLayer = entry.Name
		}),
	)
	parent.AddChild(layerList)
	layerPanel.list = layerList
	g.layerPanel = layerPanel

	row := buttonRow(6)
	row.AddChild(panelButton(theme, fontFace, "Lock", func() {
		g.toggleLayerLock(g.state.ActiveLayer)
	}))
	row.AddChild(panelButton(theme, fontFace, "Show", func() {
		g.toggleLayerVisible(g.state.ActiveLayer)
	}))
	parent.AddChild(row)
}

func (g *EditorGame) addPaletteSection(parent *widget.Container, theme *widget.Theme, fontFace *text.Face) {
	parent.AddChild(sectionLabel(fontFace, "Palette"))

	paletteInfo := widget.NewText(
		widget.TextOpts.Text("No tile selected", fontFace, colText),
	)
	g.paletteInfo = paletteInfo

	refresh := func() {
		pick := g.state.SelectedTile
		if pick == nil {
			paletteInfo.Label = "No tile selected"
			return
		}
		paletteInfo.Label = fmt.Sprintf("%s #%d", pick.Category, pick.Index)
	}

	catRow := buttonRow(6)
	for _, ref := range g.scene.Tilesets {
		category := ref.Category
		catRow.AddChild(panelButton(theme, fontFace, category, func() {
			g.state.SelectedTile = &tools.TileSelection{Category: category, Index: 0}
			refresh()
		}))
	}
	parent.AddChild(catRow)

	idxRow := buttonRow(6)
	idxRow.AddChild(panelButton(theme, fontFace, "<", func() {
		pick := g.state.SelectedTile
		if pick == nil || pick.Index == 0 {
			return
		}
		pick.Index--
		refresh()
	}))
	idxRow.AddChild(panelButton(theme, fontFace, ">", func() {
		pick := g.state.SelectedTile
		if pick == nil {
			return
		}
		if _, ok := g.scene.GIDForTile(pick.Category, pick.Index+1); !ok {
			return
		}
		pick.Index++
		refresh()
	}))
	parent.AddChild(idxRow)
	parent.AddChild(paletteInfo)
}

func (g *EditorGame) addEntitySection(parent *widget.Container, theme *widget.Theme, fontFace *text.Face) {
	parent.AddChild(sectionLabel(fontFace, "Entities"))

	typeInput := widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(leftPanelWidth-20, 28),
		),
		widget.TextInputOpts.Image(&widget.TextInputImage{
			Idle:     solidNineSlice(color.RGBA{245, 245, 245, 255}),
			Disabled: solidNineSlice(color.RGBA{200, 200, 200, 255}),
		}),
		widget.TextInputOpts.Color(&widget.TextInputColor{
			Idle:     color.Black,
			Disabled: color.Gray{Y: 120},
			Caret:    color.Black,
		}),
		widget.TextInputOpts.Face(fontFace),
		widget.TextInputOpts.ChangedHandler(func(args *widget.TextInputChangedEventArgs) {
			g.state.SelectedEntityType = args.InputText
		}),
	)
	typeInput.SetText("spawn")
	parent.AddChild(typeInput)

	row := buttonRow(6)
	row.AddChild(panelButton(theme, fontFace, "Add", g.addEntity))
	row.AddChild(panelButton(theme, fontFace, "Dup", func() {
		g.dispatcher.Select().DuplicateEntities()
	}))
	row.AddChild(panelButton(theme, fontFace, "Del", func() {
		g.dispatcher.Select().DeleteEntities()
	}))
	parent.AddChild(row)
}

func (g *EditorGame) addActionsSection(parent *widget.Container, theme *widget.Theme, fontFace *text.Face) {
	parent.AddChild(sectionLabel(fontFace, "Actions"))

	editRow := buttonRow(6)
	editRow.AddChild(panelButton(theme, fontFace, "Undo", func() {
		g.ctx.History.Undo()
	}))
	editRow.AddChild(panelButton(theme, fontFace, "Redo", func() {
		g.ctx.History.Redo()
	}))
	parent.AddChild(editRow)

	selRow := buttonRow(6)
	selRow.AddChild(panelButton(theme, fontFace, "Copy", func() {
		sel := g.dispatcher.Select()
		if sel.Selection() == nil {
			return
		}
		sel.CopySelection()
		g.sysClip.WriteSelection(sel.Clipboard().Paste())
	}))
	selRow.AddChild(panelButton(theme, fontFace, "Paste", func() {
		g.setTool(tools.ToolSelect)
		sel := g.dispatcher.Select()
		if data, ok := g.sysClip.ReadSelection(); ok {
			sel.Clipboard().Copy(data)
		}
		sel.ArmPaste()
	}))
	selRow.AddChild(panelButton(theme, fontFace, "Fill", func() {
		g.setTool(tools.ToolSelect)
		g.dispatcher.Select().ArmFill()
	}))
	parent.AddChild(selRow)

	extraRow := buttonRow(6)
	extraRow.AddChild(panelButton(theme, fontFace, "Physics", g.togglePhysicsPreview))
	extraRow.AddChild(panelButton(theme, fontFace, "Macros", g.runMacros))
	parent.AddChild(extraRow)
}

// addEntity places a new entity of the selected type in the middle of the
// scene as one undoable operation.
func (g *EditorGame) addEntity() {
	entityType := g.state.SelectedEntityType
	if entityType == "" {
		entityType = "spawn"
	}
	wx := float64(g.scene.PixelWidth()) / 2
	wy := float64(g.scene.PixelHeight()) / 2
	inst := g.ctx.Entities.Add(entityType, wx, wy)
	g.sceneDirty = true

	ctx := g.ctx
	id := inst.ID
	ctx.History.Push(&history.Operation{
		Type:        "add_entity",
		Description: "Add entity",
		Execute: func() {
			ctx.Entities.AddInstance(inst)
		},
		Undo: func() {
			ctx.Entities.RemoveMany([]int{id})
		},
	})
}
