package html

import "strings"

// makeMap builds a lookup set from a comma separated list of tag names.
func makeMap(list string) map[string]bool {
	m := make(map[string]bool)
	for _, name := range strings.Split(list, ",") {
		m[name] = true
	}
	return m
}

// unaryTags are elements that never have children or an end tag
var unaryTags = makeMap("area,base,br,col,embed,frame,hr,img,input,isindex,keygen," +
	"link,meta,param,source,track,wbr")

// canBeLeftOpenTags may omit their end tag; they close when a sibling of the
// same name opens
var canBeLeftOpenTags = makeMap("colgroup,dd,dt,li,options,p,td,tfoot,th,thead,tr,source")

// nonPhrasingTags close an open paragraph
var nonPhrasingTags = makeMap("address,article,aside,base,blockquote,body,caption,col,colgroup,dd," +
	"details,dialog,div,dl,dt,fieldset,figcaption,figure,footer,form," +
	"h1,h2,h3,h4,h5,h6,head,header,hgroup,hr,html,legend,li,menuitem,meta," +
	"optgroup,option,param,rp,rt,source,style,summary,tbody,td,tfoot,th,thead," +
	"title,tr,track")

// plainTextTags hold raw text up to their matching end tag
var plainTextTags = makeMap("script,style,textarea")

// ignoreNewlineTags drop a newline directly after their start tag
var ignoreNewlineTags = makeMap("pre,textarea")

// IsUnaryTag reports whether tag is a void element.
func IsUnaryTag(tag string) bool { return unaryTags[tag] }

// CanBeLeftOpenTag reports whether tag may be implicitly closed.
func CanBeLeftOpenTag(tag string) bool { return canBeLeftOpenTags[tag] }

// IsNonPhrasingTag reports whether tag closes an open <p>.
func IsNonPhrasingTag(tag string) bool { return nonPhrasingTags[tag] }

// IsPlainTextElement reports whether the content of tag is raw text.
func IsPlainTextElement(tag string) bool { return plainTextTags[tag] }

func shouldIgnoreFirstNewline(tag, rest string) bool {
	return tag != "" && ignoreNewlineTags[tag] && strings.HasPrefix(rest, "\n")
}
