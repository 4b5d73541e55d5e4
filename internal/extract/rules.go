package extract

// subjectRules is evaluated top to bottom; exact subject names come
// before looser topical keywords so that "物理" beats "运动".
var subjectRules = []Rule{
	// Direct subject names and common aliases.
	{"语文", "语文"}, {"国语", "语文"}, {"汉语", "语文"},
	{"数学", "数学"}, {"算术", "数学"}, {"代数", "数学"}, {"几何", "数学"},
	{"英语", "英语"}, {"英文", "英语"}, {"english", "英语"},
	{"物理学", "物理"}, {"物理", "物理"},
	{"化学", "化学"},
	{"生物学", "生物"}, {"生物", "生物"},
	{"历史", "历史"},
	{"地理", "地理"},
	{"思想政治", "政治"}, {"政治", "政治"},
	{"音乐", "音乐"},
	{"美术", "美术"}, {"绘画", "美术"},
	{"体育", "体育"}, {"体操", "体育"},
	{"信息技术", "信息技术"}, {"信息科技", "信息技术"}, {"计算机", "信息技术"},
	{"自然科学", "科学"}, {"科学", "科学"},
	{"道德与法治", "道德与法治"}, {"品德", "道德与法治"}, {"法治", "道德与法治"},
	{"劳动技术", "劳动"}, {"劳动", "劳动"},
	{"综合实践", "综合实践"}, {"实践活动", "综合实践"},
	// Programming topics taught as standalone courses.
	{"数据结构", "数据结构与算法"}, {"算法", "数据结构与算法"},
	{"javascript", "JavaScript"}, {"js", "JavaScript"},
	{"java", "Java"},
	{"python", "Python"},
	{"c++", "C++"}, {"cpp", "C++"},
	{"c语言", "C语言"},
	// Topical keywords, tried only after every direct name missed.
	{"作文", "语文"}, {"阅读", "语文"}, {"古诗", "语文"}, {"诗歌", "语文"}, {"散文", "语文"}, {"文学", "语文"},
	{"微积分", "数学"}, {"统计", "数学"}, {"方程", "数学"},
	{"单词", "英语"}, {"语法", "英语"}, {"听力", "英语"}, {"口语", "英语"},
	{"力学", "物理"}, {"电学", "物理"}, {"光学", "物理"}, {"热学", "物理"}, {"电磁", "物理"},
	{"元素", "化学"}, {"分子", "化学"}, {"化合物", "化学"}, {"原子", "化学"}, {"离子", "化学"},
	{"细胞", "生物"}, {"遗传", "生物"}, {"进化", "生物"}, {"生态", "生物"}, {"基因", "生物"}, {"光合作用", "生物"},
	{"朝代", "历史"}, {"文明", "历史"}, {"考古", "历史"},
	{"地图", "地理"}, {"气候", "地理"}, {"地形", "地理"}, {"河流", "地理"}, {"山脉", "地理"},
	{"宪法", "政治"}, {"公民", "政治"}, {"民主", "政治"}, {"法制", "政治"},
	{"歌曲", "音乐"}, {"乐器", "音乐"}, {"旋律", "音乐"}, {"节奏", "音乐"}, {"乐理", "音乐"},
	{"素描", "美术"}, {"色彩", "美术"}, {"雕塑", "美术"},
	{"健身", "体育"}, {"球类", "体育"}, {"跑步", "体育"}, {"游泳", "体育"}, {"体能", "体育"},
	{"编程", "信息技术"}, {"软件", "信息技术"}, {"网络", "信息技术"}, {"代码", "信息技术"}, {"数据库", "信息技术"},
}

// gradeRules is ordered most-specific first: "初中二年级" must win over
// the bare "初中", and short aliases ("初二") map to the canonical form.
var gradeRules = []Rule{
	// Junior high, specific grades.
	{"初中一年级", "初中一年级"}, {"初中二年级", "初中二年级"}, {"初中三年级", "初中三年级"},
	{"初一", "初中一年级"}, {"初二", "初中二年级"}, {"初三", "初中三年级"},
	{"七年级", "初中一年级"}, {"八年级", "初中二年级"}, {"九年级", "初中三年级"},
	// Senior high, specific grades.
	{"高中一年级", "高中一年级"}, {"高中二年级", "高中二年级"}, {"高中三年级", "高中三年级"},
	{"高一", "高中一年级"}, {"高二", "高中二年级"}, {"高三", "高中三年级"},
	// Primary, specific grades.
	{"小学一年级", "小学一年级"}, {"小学二年级", "小学二年级"}, {"小学三年级", "小学三年级"},
	{"小学四年级", "小学四年级"}, {"小学五年级", "小学五年级"}, {"小学六年级", "小学六年级"},
	// University.
	{"大学一年级", "大学一年级"}, {"大学二年级", "大学二年级"},
	{"大学三年级", "大学三年级"}, {"大学四年级", "大学四年级"},
	{"大一", "大学一年级"}, {"大二", "大学二年级"}, {"大三", "大学三年级"}, {"大四", "大学四年级"},
	// Bare year numbers default to primary, matching the fixed script's
	// option wording.
	{"一年级", "小学一年级"}, {"二年级", "小学二年级"}, {"三年级", "小学三年级"},
	{"四年级", "小学四年级"}, {"五年级", "小学五年级"}, {"六年级", "小学六年级"},
	// School-stage catch-alls.
	{"小学", "小学"}, {"初中", "初中"}, {"高中", "高中"}, {"大学", "大学"},
	{"幼儿园", "幼儿园"}, {"学前班", "学前班"},
}
