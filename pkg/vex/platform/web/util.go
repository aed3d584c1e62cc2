package web

import "strings"

func makeMap(list string) map[string]bool {
	m := make(map[string]bool)
	for _, name := range strings.Split(list, ",") {
		m[name] = true
	}
	return m
}

var htmlTags = makeMap("html,body,base,head,link,meta,style,title," +
	"address,article,aside,footer,header,h1,h2,h3,h4,h5,h6,hgroup,nav,section," +
	"div,dd,dl,dt,figcaption,figure,picture,hr,img,li,main,ol,p,pre,ul," +
	"a,b,abbr,bdi,bdo,br,cite,code,data,dfn,em,i,kbd,mark,q,rp,rt,rtc,ruby," +
	"s,samp,small,span,strong,sub,sup,time,u,var,wbr,area,audio,map,track,video," +
	"embed,object,param,source,canvas,script,noscript,del,ins," +
	"caption,col,colgroup,table,thead,tbody,td,th,tr," +
	"button,datalist,fieldset,form,input,label,legend,meter,optgroup,option," +
	"output,progress,select,textarea," +
	"details,dialog,menu,menuitem,summary," +
	"content,element,shadow,template,blockquote,iframe,tfoot")

// svgTags may contain only basic shapes; foreignObject can hold HTML
var svgTags = makeMap("svg,animate,circle,clippath,cursor,defs,desc,ellipse,filter,font-face," +
	"foreignObject,g,glyph,image,line,marker,mask,missing-glyph,path,pattern," +
	"polygon,polyline,rect,switch,symbol,text,textpath,tspan,use,view")

var acceptValue = makeMap("input,textarea,option,select,progress")

// IsHTMLTag reports whether tag is a standard HTML element.
func IsHTMLTag(tag string) bool { return htmlTags[tag] }

// IsSVG reports whether tag is an SVG element.
func IsSVG(tag string) bool { return svgTags[tag] }

// IsReservedTag reports whether tag is a platform element rather than a
// component.
func IsReservedTag(tag string) bool { return IsHTMLTag(tag) || IsSVG(tag) }

// IsPreTag reports whether tag preserves whitespace.
func IsPreTag(tag string) bool { return tag == "pre" }

// GetTagNamespace returns the namespace a tag opens, or "".
func GetTagNamespace(tag string) string {
	if IsSVG(tag) {
		return "svg"
	}
	// basic support for MathML; other MathML elements inherit the namespace
	if tag == "math" {
		return "math"
	}
	return ""
}

// MustUseProp reports whether attr must be bound as a DOM property on tag.
// typ is the element's static type attribute.
func MustUseProp(tag, typ, attr string) bool {
	switch attr {
	case "value":
		return acceptValue[tag] && typ != "button"
	case "selected":
		return tag == "option"
	case "checked":
		return tag == "input"
	case "muted":
		return tag == "video"
	}
	return false
}
