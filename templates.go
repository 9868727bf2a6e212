package pptxpack

// Static content for the auxiliary parts every package carries. These
// are written once when a package is created and never edited
// afterwards; slide content references them but the engine treats them
// as opaque boilerplate required by the format.

const tplTheme = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<a:theme xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" name="Office Theme"><a:themeElements><a:clrScheme name="Office"><a:dk1><a:sysClr val="windowText" lastClr="000000"/></a:dk1><a:lt1><a:sysClr val="window" lastClr="FFFFFF"/></a:lt1><a:dk2><a:srgbClr val="44546A"/></a:dk2><a:lt2><a:srgbClr val="E7E6E6"/></a:lt2><a:accent1><a:srgbClr val="4472C4"/></a:accent1><a:accent2><a:srgbClr val="ED7D31"/></a:accent2><a:accent3><a:srgbClr val="A5A5A5"/></a:accent3><a:accent4><a:srgbClr val="FFC000"/></a:accent4><a:accent5><a:srgbClr val="5B9BD5"/></a:accent5><a:accent6><a:srgbClr val="70AD47"/></a:accent6><a:hlink><a:srgbClr val="0563C1"/></a:hlink><a:folHlink><a:srgbClr val="954F72"/></a:folHlink></a:clrScheme><a:fontScheme name="Office"><a:majorFont><a:latin typeface="Calibri Light"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont><a:minorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:minorFont></a:fontScheme><a:fmtScheme name="Office"><a:fillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:gradFill rotWithShape="1"><a:gsLst><a:gs pos="0"><a:schemeClr val="phClr"><a:lumMod val="110000"/><a:satMod val="105000"/><a:tint val="67000"/></a:schemeClr></a:gs><a:gs pos="50000"><a:schemeClr val="phClr"><a:lumMod val="105000"/><a:satMod val="103000"/><a:tint val="73000"/></a:schemeClr></a:gs><a:gs pos="100000"><a:schemeClr val="phClr"><a:lumMod val="105000"/><a:satMod val="109000"/><a:tint val="81000"/></a:schemeClr></a:gs></a:gsLst><a:lin ang="5400000" scaled="0"/></a:gradFill><a:gradFill rotWithShape="1"><a:gsLst><a:gs pos="0"><a:schemeClr val="phClr"><a:satMod val="103000"/><a:lumMod val="102000"/><a:tint val="94000"/></a:schemeClr></a:gs><a:gs pos="50000"><a:schemeClr val="phClr"><a:satMod val="110000"/><a:lumMod val="100000"/><a:shade val="100000"/></a:schemeClr></a:gs><a:gs pos="100000"><a:schemeClr val="phClr"><a:lumMod val="99000"/><a:satMod val="120000"/><a:shade val="78000"/></a:schemeClr></a:gs></a:gsLst><a:lin ang="5400000" scaled="0"/></a:gradFill></a:fillStyleLst><a:lnStyleLst><a:ln w="6350" cap="flat" cmpd="sng" algn="ctr"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:prstDash val="solid"/><a:miter lim="800000"/></a:ln><a:ln w="12700" cap="flat" cmpd="sng" algn="ctr"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:prstDash val="solid"/><a:miter lim="800000"/></a:ln><a:ln w="19050" cap="flat" cmpd="sng" algn="ctr"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:prstDash val="solid"/><a:miter lim="800000"/></a:ln></a:lnStyleLst><a:effectStyleLst><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst><a:outerShdw blurRad="57150" dist="19050" dir="5400000" algn="ctr" rotWithShape="0"><a:srgbClr val="000000"><a:alpha val="63000"/></a:srgbClr></a:outerShdw></a:effectLst></a:effectStyle></a:effectStyleLst><a:bgFillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"><a:tint val="95000"/><a:satMod val="170000"/></a:schemeClr></a:solidFill><a:gradFill rotWithShape="1"><a:gsLst><a:gs pos="0"><a:schemeClr val="phClr"><a:tint val="93000"/><a:satMod val="150000"/><a:shade val="98000"/><a:lumMod val="102000"/></a:schemeClr></a:gs><a:gs pos="50000"><a:schemeClr val="phClr"><a:tint val="98000"/><a:satMod val="130000"/><a:shade val="90000"/><a:lumMod val="103000"/></a:schemeClr></a:gs><a:gs pos="100000"><a:schemeClr val="phClr"><a:shade val="63000"/><a:satMod val="120000"/></a:schemeClr></a:gs></a:gsLst><a:lin ang="5400000" scaled="0"/></a:gradFill></a:bgFillStyleLst></a:fmtScheme></a:themeElements></a:theme>`

const tplSlideMaster = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sldMaster xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><p:cSld><p:bg><p:bgRef idx="1001"><a:schemeClr val="bg1"/></p:bgRef></p:bg><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr></p:spTree></p:cSld><p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/><p:sldLayoutIdLst><p:sldLayoutId id="2147483649" r:id="rId1"/></p:sldLayoutIdLst><p:txStyles><p:titleStyle/><p:bodyStyle/><p:otherStyle/></p:txStyles></p:sldMaster>`

const tplSlideLayout = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sldLayout xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" type="blank" preserve="1"><p:cSld name="Blank"><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr></p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sldLayout>`

const tplNotesMaster = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:notesMaster xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><p:cSld><p:bg><p:bgRef idx="1001"><a:schemeClr val="bg1"/></p:bgRef></p:bg><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr></p:spTree></p:cSld><p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/></p:notesMaster>`

const tplPresProps = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:presentationPr xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"/>`

const tplViewProps = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:viewPr xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><p:normalViewPr><p:restoredLeft sz="15620"/><p:restoredTop sz="94660"/></p:normalViewPr><p:gridSpacing cx="76200" cy="76200"/></p:viewPr>`

const tplTableStyles = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<a:tblStyleLst xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" def="{5C22544A-7EE6-4342-B048-85BDC9FD1C3A}"/>`

// Canonical part paths.
const (
	pathContentTypes = "[Content_Types].xml"
	pathRootRels     = "_rels/.rels"
	pathCoreProps    = "docProps/core.xml"
	pathAppProps     = "docProps/app.xml"
	pathPresentation = "ppt/presentation.xml"
	pathPresProps    = "ppt/presProps.xml"
	pathViewProps    = "ppt/viewProps.xml"
	pathTableStyles  = "ppt/tableStyles.xml"
	pathSlideMaster  = "ppt/slideMasters/slideMaster1.xml"
	pathSlideLayout  = "ppt/slideLayouts/slideLayout1.xml"
	pathNotesMaster  = "ppt/notesMasters/notesMaster1.xml"
	pathTheme        = "ppt/theme/theme1.xml"
)

// Relationship tables of the write-once boilerplate parts. These are
// fixture documents with fixed ids, never touched by the allocator.
const tplRootRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="ppt/presentation.xml"/><Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/><Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties" Target="docProps/app.xml"/></Relationships>`

const tplSlideMasterRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/><Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme" Target="../theme/theme1.xml"/></Relationships>`

const tplSlideLayoutRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="../slideMasters/slideMaster1.xml"/></Relationships>`

const tplNotesMasterRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme" Target="../theme/theme1.xml"/></Relationships>`

// seedSkeleton populates a fresh package with the fixed part set: the
// content-type overrides, the boilerplate parts and their fixture
// relationship files, and an empty presentation document ready to
// receive slide-list entries. The presentation's own table is the only
// seeded table fed by the package allocator; it keeps growing as
// slides are added.
func (p *Package) seedSkeleton() {
	store := p.store

	// Presentation document.
	pres := NewNode("p:presentation")
	pres.SetAttributes(
		Attr{Name: "xmlns:a", Value: nsDrawingML},
		Attr{Name: "xmlns:r", Value: nsOfficeDocRels},
		Attr{Name: "xmlns:p", Value: nsPresentationML},
	)
	presRels := NewRelationships()
	masterRel := presRels.add(p.nextRelID(), relTypeSlideMaster, "slideMasters/slideMaster1.xml")
	notesMasterRel := presRels.add(p.nextRelID(), relTypeNotesMaster, "notesMasters/notesMaster1.xml")
	presRels.add(p.nextRelID(), relTypePresProps, "presProps.xml")
	presRels.add(p.nextRelID(), relTypeViewProps, "viewProps.xml")
	presRels.add(p.nextRelID(), relTypeTableStyles, "tableStyles.xml")
	presRels.add(p.nextRelID(), relTypeTheme, "theme/theme1.xml")

	pres.CreateChild("p:sldMasterIdLst").CreateChild("p:sldMasterId").SetAttributes(
		Attr{Name: "id", Value: "2147483648"},
		Attr{Name: "r:id", Value: masterRel},
	)
	pres.CreateChild("p:notesMasterIdLst").CreateChild("p:notesMasterId").SetAttributes(
		Attr{Name: "r:id", Value: notesMasterRel},
	)
	pres.CreateChild("p:sldIdLst")
	pres.CreateChild("p:sldSz").SetAttributes(
		Attr{Name: "cx", Value: formatInt(p.widthEMU)},
		Attr{Name: "cy", Value: formatInt(p.heightEMU)},
	)
	pres.CreateChild("p:notesSz").SetAttributes(
		Attr{Name: "cx", Value: "6858000"},
		Attr{Name: "cy", Value: "9144000"},
	)

	store.Put(&Part{Path: pathPresentation, Doc: pres, Rels: presRels})
	store.PutRaw(pathRootRels, []byte(tplRootRels))
	store.PutRaw(pathPresProps, []byte(tplPresProps))
	store.PutRaw(pathViewProps, []byte(tplViewProps))
	store.PutRaw(pathTableStyles, []byte(tplTableStyles))
	store.PutRaw(pathSlideMaster, []byte(tplSlideMaster))
	store.PutRaw(relsPathFor(pathSlideMaster), []byte(tplSlideMasterRels))
	store.PutRaw(pathSlideLayout, []byte(tplSlideLayout))
	store.PutRaw(relsPathFor(pathSlideLayout), []byte(tplSlideLayoutRels))
	store.PutRaw(pathNotesMaster, []byte(tplNotesMaster))
	store.PutRaw(relsPathFor(pathNotesMaster), []byte(tplNotesMasterRels))
	store.PutRaw(pathTheme, []byte(tplTheme))

	p.contentTypes.RegisterOverride(pathPresentation, ctPresentation)
	p.contentTypes.RegisterOverride(pathPresProps, ctPresProps)
	p.contentTypes.RegisterOverride(pathViewProps, ctViewProps)
	p.contentTypes.RegisterOverride(pathTableStyles, ctTableStyles)
	p.contentTypes.RegisterOverride(pathSlideMaster, ctSlideMaster)
	p.contentTypes.RegisterOverride(pathSlideLayout, ctSlideLayout)
	p.contentTypes.RegisterOverride(pathNotesMaster, ctNotesMaster)
	p.contentTypes.RegisterOverride(pathTheme, ctTheme)
	p.contentTypes.RegisterOverride(pathCoreProps, ctCoreProps)
	p.contentTypes.RegisterOverride(pathAppProps, ctExtProps)
}
