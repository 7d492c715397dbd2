package rod

// snapshotJS runs inside the page after load and serializes the rendered
// body subtree: lowercase tag names, attributes, the computed style subset
// extraction depends on, and layout boxes in document coordinates. Shadow
// roots are flattened into the host's child list so Web Component content
// is not lost.
const snapshotJS = `() => {
	const styleOf = (el) => {
		const cs = getComputedStyle(el);
		return {
			display: cs.display,
			visibility: cs.visibility,
			opacity: parseFloat(cs.opacity),
			fontSize: parseFloat(cs.fontSize) || 0,
			fontWeight: parseFloat(cs.fontWeight) || 400,
			fontStyle: cs.fontStyle,
			fontFamily: cs.fontFamily,
		};
	};

	const serialize = (el) => {
		const rect = el.getBoundingClientRect();
		const attrs = {};
		for (const a of el.attributes) {
			attrs[a.name] = a.value;
		}
		const nodes = [];
		const children = el.shadowRoot ? el.shadowRoot.childNodes : el.childNodes;
		for (const n of children) {
			if (n.nodeType === Node.TEXT_NODE) {
				if (n.textContent) {
					nodes.push({text: n.textContent});
				}
			} else if (n.nodeType === Node.ELEMENT_NODE) {
				nodes.push({el: serialize(n)});
			}
		}
		return {
			tag: el.tagName.toLowerCase(),
			role: el.getAttribute('role') || '',
			ariaHidden: el.getAttribute('aria-hidden') === 'true',
			attrs: attrs,
			style: styleOf(el),
			bbox: {
				x: rect.x + window.scrollX,
				y: rect.y + window.scrollY,
				width: rect.width,
				height: rect.height,
			},
			nodes: nodes,
		};
	};

	return JSON.stringify({
		url: location.href,
		title: document.title,
		root: document.body ? serialize(document.body) : null,
	});
}`
